package intel

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"warroom-monitor/internal/types"
)

// CheckHealth probes the status server endpoints and returns path -> HTTP
// status code; unreachable endpoints report 0.
func CheckHealth(ctx context.Context, baseURL string) map[string]int {
	base := strings.TrimRight(baseURL, "/")
	paths := []string{"/healthz", "/state", "/alerts"}

	client := &http.Client{Timeout: 10 * time.Second}
	results := make(map[string]int, len(paths))
	for _, p := range paths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+p, nil)
		if err != nil {
			results[p] = 0
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			results[p] = 0
			continue
		}
		resp.Body.Close()
		results[p] = resp.StatusCode
	}
	return results
}

// Report renders the 24h Markdown status report from the alert and fetch
// logs. health may be empty when no status server is configured.
func Report(alerts []types.Alert, batches []types.FetchBatch, health map[string]int, now time.Time) string {
	cutoff := now.Add(-contextWindow)
	recentAlerts := alertsSince(alerts, cutoff)
	recentBatches := batchesSince(batches, cutoff)

	var urgent []types.Alert
	for _, a := range recentAlerts {
		if a.Severity.Rank() >= types.SeverityHigh.Rank() {
			urgent = append(urgent, a)
		}
	}

	totalTweets := 0
	accountsSeen := make(map[string]struct{})
	for _, b := range recentBatches {
		totalTweets += len(b.Tweets)
		accountsSeen[b.Account] = struct{}{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# War Room Daily Report: %s\n", now.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format("2006-01-02 15:04:05")+" UTC")

	b.WriteString("## Quick Stats\n")
	fmt.Fprintf(&b, "- **Signals (24h):** %d (%d high/critical)\n", len(recentAlerts), len(urgent))
	fmt.Fprintf(&b, "- **Tweets tracked (24h):** %d\n", totalTweets)
	fmt.Fprintf(&b, "- **Accounts with activity:** %d\n\n", len(accountsSeen))

	if len(health) > 0 {
		b.WriteString("## Status Server Health\n")
		paths := make([]string, 0, len(health))
		for p := range health {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			mark := "FAIL"
			if health[p] == http.StatusOK {
				mark = "OK"
			}
			fmt.Fprintf(&b, "- %s `%s`: %d\n", mark, p, health[p])
		}
		b.WriteString("\n")
	}

	if len(urgent) > 0 {
		b.WriteString("## Critical / High Alerts\n\n")
		for _, a := range urgent {
			fmt.Fprintf(&b, "### %s (%s)\n", a.Type, a.Severity)
			fmt.Fprintf(&b, "**Source:** %s | **Detected:** %s\n", a.Source, a.DetectedAt.Format(time.RFC3339))
			fmt.Fprintf(&b, "> %s\n\n", truncate(a.Tweet.Text, 300))
			fmt.Fprintf(&b, "[View](%s)\n\n", a.Tweet.URL)
		}
	}

	if len(recentAlerts) > 0 {
		b.WriteString("## All Signals (24h)\n\n")
		b.WriteString("| Time | Type | Source | Severity | Summary |\n")
		b.WriteString("|------|------|--------|----------|---------|\n")
		for i, a := range recentAlerts {
			if i >= 30 {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				a.DetectedAt.UTC().Format("15:04"), a.Type, a.Source, a.Severity, truncate(a.Summary, 80))
		}
		b.WriteString("\n")
	}

	return b.String()
}
