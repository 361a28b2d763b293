// Package intel turns accumulated monitor output into strategic briefs and
// daily reports for the war room.
package intel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warroom-monitor/internal/accounts"
	"warroom-monitor/internal/types"
)

const contextWindow = 24 * time.Hour

const systemPrompt = `You are the intelligence analyst for the pulselab war room. Pulselab is competing in the Forgepad builder program, where winners are picked on public traction, advisor engagement, and build-in-public momentum.

Your job: digest raw X monitoring data into a strategic brief. Cover:
1. THREAT DETECTION: winner announcements, strong new competitors, negative signals
2. OPPORTUNITY MAPPING: advisor engagement patterns, topics gaining traction, gaps to exploit
3. SENTIMENT: how the ecosystem is talking about the program and our space
4. ACTIONABLE DIRECTIVES: specific things the team should do in the next 12-24 hours

Write in direct briefing style. No fluff. End with a "PRIORITY ACTIONS" section of at most 5 items ranked by urgency.`

// BuildContext renders the last-24h alerts and fetch batches, plus the
// roster, into the prompt context for the analyst.
func BuildContext(alerts []types.Alert, batches []types.FetchBatch, now time.Time) string {
	cutoff := now.Add(-contextWindow)

	var b strings.Builder

	recentAlerts := alertsSince(alerts, cutoff)
	if len(recentAlerts) > 0 {
		b.WriteString("## RAW ALERTS (last 24h)\n")
		for _, a := range recentAlerts {
			fmt.Fprintf(&b, "[%s] %s from %s\n", strings.ToUpper(string(a.Severity)), a.Type, a.Source)
			fmt.Fprintf(&b, "  %q\n", truncate(a.Tweet.Text, 300))
			fmt.Fprintf(&b, "  Engagement: %d likes %d reposts %d views\n",
				a.Tweet.Metrics.Likes, a.Tweet.Metrics.Reposts, a.Tweet.Metrics.Views)
			fmt.Fprintf(&b, "  %s\n\n", a.Tweet.URL)
		}
	}

	recentBatches := batchesSince(batches, cutoff)
	if len(recentBatches) > 0 {
		b.WriteString("## RAW TWEETS BY ACCOUNT (last 24h)\n")
		for _, batch := range recentBatches {
			fmt.Fprintf(&b, "### @%s, %d tweet(s)\n", batch.Account, len(batch.Tweets))
			for i, t := range batch.Tweets {
				if i >= 10 {
					break
				}
				fmt.Fprintf(&b, "- %q\n", truncate(t.Text, 250))
				fmt.Fprintf(&b, "  %d likes %d reposts %d views | %s\n",
					t.Metrics.Likes, t.Metrics.Reposts, t.Metrics.Views, t.CreatedAt)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## MONITORED ACCOUNTS\n")
	for _, a := range accounts.All() {
		fmt.Fprintf(&b, "- @%s, %s (%s, %s) [%s]\n", a.Handle, a.Name, a.Role, a.Org, a.Tier)
	}

	return b.String()
}

// DailyBrief asks the model for the daily strategic brief.
func DailyBrief(ctx context.Context, client *OpenRouterClient, alerts []types.Alert, batches []types.FetchBatch, now time.Time) (string, error) {
	cutoff := now.Add(-contextWindow)
	userPrompt := fmt.Sprintf(`Generate the daily strategic intelligence brief.

CURRENT STATUS:
- Date: %s
- Alerts in last 24h: %d
- Accounts monitored: %d

RAW INTEL DATA:
%s

Produce the brief now. Title it "PULSELAB WAR ROOM BRIEF" with today's date.`,
		now.UTC().Format("2006-01-02"), len(alertsSince(alerts, cutoff)), len(accounts.All()),
		BuildContext(alerts, batches, now))

	res, err := client.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.3)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// CriticalBrief asks the model for an immediate read on a single alert.
func CriticalBrief(ctx context.Context, client *OpenRouterClient, a types.Alert) (string, error) {
	userPrompt := fmt.Sprintf(`CRITICAL ALERT, immediate analysis required.

Type: %s
Severity: %s
Source: %s
Tweet: %q
Engagement: %d likes %d reposts %d views
URL: %s
Detected: %s

Analyze this signal. What does it mean for pulselab? What should we do immediately?
Keep it under 500 words. Be decisive.`,
		a.Type, a.Severity, a.Source, a.Tweet.Text,
		a.Tweet.Metrics.Likes, a.Tweet.Metrics.Reposts, a.Tweet.Metrics.Views,
		a.Tweet.URL, a.DetectedAt.Format(time.RFC3339))

	res, err := client.Chat(ctx, []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.2)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// RecentCritical returns high/critical alerts detected within the last hour.
func RecentCritical(alerts []types.Alert, now time.Time) []types.Alert {
	cutoff := now.Add(-time.Hour)
	var out []types.Alert
	for _, a := range alerts {
		if a.Severity.Rank() >= types.SeverityHigh.Rank() && a.DetectedAt.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

func alertsSince(alerts []types.Alert, cutoff time.Time) []types.Alert {
	var out []types.Alert
	for _, a := range alerts {
		if a.DetectedAt.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

func batchesSince(batches []types.FetchBatch, cutoff time.Time) []types.FetchBatch {
	var out []types.FetchBatch
	for _, b := range batches {
		if b.FetchedAt.After(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
