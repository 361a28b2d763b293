// Package track filters fetched tweet batches against per-account watermarks.
package track

import (
	"math/big"

	"warroom-monitor/internal/types"
)

// FirstRunLimit bounds the initial backfill for an account with no recorded
// watermark, so a first run does not flood downstream consumers.
const FirstRunLimit = 5

// NewTweets returns the subset of batch considered unseen. The batch is
// assumed newest-first. Tweet ids are compared as arbitrary-precision
// integers; they routinely exceed the float64-safe range. A watermark that
// fails to parse is treated as absent.
func NewTweets(lastSeenID string, batch []types.Tweet) []types.Tweet {
	if len(batch) == 0 {
		return nil
	}

	last, ok := parseID(lastSeenID)
	if !ok {
		if len(batch) > FirstRunLimit {
			return batch[:FirstRunLimit]
		}
		return batch
	}

	var out []types.Tweet
	for _, t := range batch {
		id, ok := parseID(t.ID)
		if !ok {
			continue
		}
		if id.Cmp(last) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Advance returns the watermark after observing batch: the id of the newest
// item in the full batch, whether or not anything was unseen. This keeps
// tracking moving even when the upstream returns stale or reordered data.
// An empty batch leaves the watermark unchanged.
func Advance(lastSeenID string, batch []types.Tweet) string {
	if len(batch) == 0 {
		return lastSeenID
	}
	return batch[0].ID
}

func parseID(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
