package classify

import (
	"fmt"
	"strings"
	"time"

	"warroom-monitor/internal/accounts"
	"warroom-monitor/internal/types"
)

// Keyword families for signal detection. Matching is case-insensitive
// substring containment, not tokenized; overlapping matches across families
// each produce their own alert.
var signalKeywords = map[types.SignalType][]string{
	types.SignalTopicMention: {
		"hackathon", "build in public", "demo day", "builder residency",
		"grand prize", "cohort", "build-in-public",
	},
	types.SignalAnnouncement: {
		"winner", "selected", "investment", "congratulations", "awarded",
		"funded", "accepted", "announced",
	},
	types.SignalBrandMention: {
		"pulselab", "pulse lab", "pulselab.io", "$pulse",
	},
	types.SignalAdvisorSignal: {
		"excited to advise", "reviewing", "impressed by", "shipping",
		"great progress", "notable project", "standout",
	},
	types.SignalCompetitorMention: {
		"meshwire", "quietloop", "$hatch", "signalyard", "driftdeck",
	},
}

// Families are evaluated in a fixed order so alert output is deterministic.
var signalOrder = []types.SignalType{
	types.SignalTopicMention,
	types.SignalAnnouncement,
	types.SignalBrandMention,
	types.SignalAdvisorSignal,
	types.SignalCompetitorMention,
}

// Alerts evaluates one tweet against every keyword family and returns the
// resulting alerts, possibly none. It never fails, whatever the text.
func Alerts(t types.Tweet, acct accounts.Account, now time.Time) []types.Alert {
	text := strings.ToLower(t.Text)

	var alerts []types.Alert
	for _, st := range signalOrder {
		if !matchesAny(text, signalKeywords[st]) {
			continue
		}
		alerts = append(alerts, types.Alert{
			Type:       st,
			Severity:   severityFor(st, acct.Tier, t.Metrics),
			Source:     "@" + acct.Handle,
			Tweet:      t,
			Summary:    summary(st, acct, t),
			DetectedAt: now.UTC(),
		})
	}
	return alerts
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// severityFor resolves severity by precedence; the first matching rule wins.
func severityFor(st types.SignalType, tier types.Tier, m types.Metrics) types.Severity {
	if st == types.SignalAnnouncement && tier == types.TierCritical {
		return types.SeverityCritical
	}
	if st == types.SignalBrandMention {
		return types.SeverityHigh
	}
	if st == types.SignalTopicMention && tier == types.TierCritical {
		return types.SeverityHigh
	}
	if m.Likes > 100 || m.Reposts > 50 {
		return types.SeverityHigh
	}
	return types.SeverityMedium
}

// summary renders a one-line description for the alert. The default arm
// keeps this total: an unknown signal type still produces a summary.
func summary(st types.SignalType, acct accounts.Account, t types.Tweet) string {
	prefix := fmt.Sprintf("%s (%s)", acct.Name, acct.Org)
	engagement := fmt.Sprintf("[%d likes, %d reposts, %d views]",
		t.Metrics.Likes, t.Metrics.Reposts, t.Metrics.Views)

	switch st {
	case types.SignalAnnouncement:
		return fmt.Sprintf("%s may have announced a cohort winner %s", prefix, engagement)
	case types.SignalBrandMention:
		return fmt.Sprintf("%s mentioned pulselab! %s", prefix, engagement)
	case types.SignalTopicMention:
		return fmt.Sprintf("%s posted about the builder program %s", prefix, engagement)
	case types.SignalAdvisorSignal:
		return fmt.Sprintf("%s showing advisor engagement %s", prefix, engagement)
	case types.SignalCompetitorMention:
		return fmt.Sprintf("%s referenced a competing project %s", prefix, engagement)
	default:
		return fmt.Sprintf("%s signal detected %s", prefix, engagement)
	}
}
