package main

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"warroom-monitor/internal/config"
	"warroom-monitor/internal/logging"
	"warroom-monitor/internal/store"
	"warroom-monitor/internal/types"
)

func main() {
	log := logging.NewLogger("warmcp")
	config.LoadEnv(log)

	paths := store.Paths{DataDir: config.GetEnv("MONITOR_DATA_DIR", "data")}

	s := server.NewMCPServer(
		"warroom-intel",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	alertsTool := mcp.Tool{
		Name:        "warroom.latest_alerts",
		Description: "Return the most recent war-room alerts as JSON, newest last",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"limit":        map[string]any{"type": "number", "description": "Maximum number of alerts to return (default 20)"},
				"min_severity": map[string]any{"type": "string", "description": "Only include alerts at or above this severity: low, medium, high, critical"},
			},
		},
	}
	s.AddTool(alertsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var alerts []types.Alert
		if _, err := store.ReadJSON(paths.Alerts(), &alerts); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		args := request.GetArguments()
		limit := 20
		if v, ok := args["limit"].(float64); ok && v > 0 {
			limit = int(v)
		}
		minRank := 0
		if v, ok := args["min_severity"].(string); ok && v != "" {
			minRank = types.Severity(v).Rank()
		}

		filtered := make([]types.Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.Severity.Rank() >= minRank {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) > limit {
			filtered = filtered[len(filtered)-limit:]
		}

		b, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	})

	stateTool := mcp.Tool{
		Name:        "warroom.monitor_state",
		Description: "Return the monitor state: per-account watermarks, last run time, all-time totals",
		InputSchema: mcp.ToolInputSchema{Type: "object"},
	}
	s.AddTool(stateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state := types.MonitorState{LastTweetIDs: map[string]string{}}
		if _, err := store.ReadJSON(paths.State(), &state); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		b, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	})

	port := config.GetEnv("PORT", "8081")
	httpServer := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)
	log.Infof("warroom intel MCP server listening on :%s/mcp", port)
	if err := httpServer.Start(":" + port); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
