// Package store persists the monitor's JSON documents: the state record and
// the bounded alert and fetch logs. All writes go through a temp file rename
// so readers never observe a partial document.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"warroom-monitor/internal/types"
)

const (
	StateFile  = "monitor-state.json"
	AlertsFile = "alerts.json"
	TweetsFile = "tweets.json"

	// Retention caps for the append logs. Truncation keeps the newest
	// entries and never reorders what remains.
	AlertLogLimit = 500
	TweetLogLimit = 200
)

// Paths resolves document locations under a single data directory.
type Paths struct {
	DataDir string
}

func (p Paths) State() string  { return filepath.Join(p.DataDir, StateFile) }
func (p Paths) Alerts() string { return filepath.Join(p.DataDir, AlertsFile) }
func (p Paths) Tweets() string { return filepath.Join(p.DataDir, TweetsFile) }

// ReadJSON loads path into out. A missing file is not an error: it returns
// false and leaves out untouched so callers get their default value.
func ReadJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// WriteJSON atomically replaces path with the JSON encoding of v.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// AppendBounded appends entries to the JSON array at path, then retains only
// the newest limit entries. The append is all-or-nothing: readers see either
// the previous array or the fully appended, truncated one.
func AppendBounded[T any](path string, limit int, entries []T) error {
	if len(entries) == 0 {
		return nil
	}
	var existing []T
	if _, err := ReadJSON(path, &existing); err != nil {
		return err
	}
	existing = append(existing, entries...)
	if limit > 0 && len(existing) > limit {
		existing = existing[len(existing)-limit:]
	}
	return WriteJSON(path, existing)
}

// LoadState reads the monitor state document. A missing file yields the zero
// state. An unreadable file is moved aside to <path>.corrupt and the zero
// state is returned, so one bad write cannot wedge every later cycle.
func LoadState(path string, log logrus.FieldLogger) types.MonitorState {
	var state types.MonitorState
	if _, err := ReadJSON(path, &state); err != nil {
		corrupt := path + ".corrupt"
		if renameErr := os.Rename(path, corrupt); renameErr != nil {
			log.WithError(err).Error("state file unreadable and could not be moved aside; starting fresh")
		} else {
			log.WithError(err).Errorf("state file unreadable, moved to %s; starting fresh", corrupt)
		}
		state = types.MonitorState{}
	}
	if state.LastTweetIDs == nil {
		state.LastTweetIDs = make(map[string]string)
	}
	return state
}

// SaveState persists the state document atomically.
func SaveState(path string, state types.MonitorState) error {
	return WriteJSON(path, state)
}
