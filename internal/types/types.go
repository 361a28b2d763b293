package types

import "time"

// Tier is the polling priority class of a monitored account.
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierStandard Tier = "standard"
)

// SignalType identifies the keyword family that fired on a tweet.
type SignalType string

const (
	SignalTopicMention      SignalType = "topic_mention"
	SignalAnnouncement      SignalType = "announcement"
	SignalAdvisorSignal     SignalType = "advisor_signal"
	SignalCompetitorMention SignalType = "competitor_mention"
	SignalBrandMention      SignalType = "brand_mention"
)

// Severity is the urgency assigned to an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities so they can be compared; higher is more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// Metrics holds engagement counts for a single tweet.
type Metrics struct {
	Likes     int `json:"likes"`
	Reposts   int `json:"reposts"`
	Replies   int `json:"replies"`
	Views     int `json:"views"`
	Quotes    int `json:"quotes"`
	Bookmarks int `json:"bookmarks"`
}

// Tweet is a normalized content item from the X API. IDs are opaque decimal
// strings that can exceed 64-bit range; they are never parsed as floats.
type Tweet struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	CreatedAt    string   `json:"created_at"`
	AuthorHandle string   `json:"author_handle"`
	AuthorName   string   `json:"author_name"`
	URL          string   `json:"url"`
	Metrics      Metrics  `json:"metrics"`
	IsRepost     bool     `json:"is_repost"`
	IsReply      bool     `json:"is_reply"`
	URLs         []string `json:"urls,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	Mentions     []string `json:"mentions,omitempty"`
}

// Alert is one detected signal on one tweet. A tweet that matches several
// keyword families produces one Alert per family.
type Alert struct {
	Type       SignalType `json:"type"`
	Severity   Severity   `json:"severity"`
	Source     string     `json:"source"`
	Tweet      Tweet      `json:"tweet"`
	Summary    string     `json:"summary"`
	DetectedAt time.Time  `json:"detected_at"`
}

// FetchBatch records the new tweets collected from one account in one cycle.
type FetchBatch struct {
	Account   string    `json:"account"`
	Tweets    []Tweet   `json:"tweets"`
	FetchedAt time.Time `json:"fetched_at"`
	NewCount  int       `json:"new_since_last_check"`
}

// MonitorState is the persisted per-process record of polling progress.
// Totals are all-time counters and are never decremented, independent of
// log truncation.
type MonitorState struct {
	LastTweetIDs map[string]string `json:"last_tweet_ids"`
	LastRunAt    time.Time         `json:"last_run_at"`
	TotalAlerts  int               `json:"total_alerts"`
	TotalFetched int               `json:"total_tweets_fetched"`
}
