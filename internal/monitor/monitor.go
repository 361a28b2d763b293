// Package monitor drives polling cycles over the account roster: scheduling,
// dedup, classification, and persistence.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"warroom-monitor/internal/accounts"
	"warroom-monitor/internal/classify"
	"warroom-monitor/internal/store"
	"warroom-monitor/internal/track"
	"warroom-monitor/internal/types"
)

// AccountsForCycle returns the accounts to poll on the given cycle, in tier
// order. Cycle numbering starts at 1. Critical and high tiers poll every
// cycle; standard-tier accounts (competitors included) ride along every
// third cycle to stay inside the upstream rate limit.
func AccountsForCycle(cycle int) []accounts.Account {
	out := make([]accounts.Account, 0, len(accounts.Critical)+len(accounts.High))
	out = append(out, accounts.Critical...)
	out = append(out, accounts.High...)

	if cycle%3 == 0 {
		for _, a := range accounts.All() {
			if a.Tier == types.TierStandard {
				out = append(out, a)
			}
		}
	}
	return out
}

// Fetcher returns the latest tweets for one account, newest-first.
type Fetcher func(ctx context.Context, handle string) ([]types.Tweet, error)

// Monitor runs cycles sequentially: one account at a time, with a fixed
// delay between fetches. Clock and sleep are injectable so tests can drive
// many cycles without real delays.
type Monitor struct {
	Fetch        Fetcher
	Paths        store.Paths
	Log          logrus.FieldLogger
	Schedule     func(cycle int) []accounts.Account
	Now          func() time.Time
	Sleep        func(time.Duration)
	AccountDelay time.Duration

	// PostAlert, when set, publishes critical alerts after the cycle's
	// state has been persisted. Failures are logged, never fatal.
	PostAlert func(ctx context.Context, a types.Alert) error
}

func New(fetch Fetcher, paths store.Paths, log logrus.FieldLogger) *Monitor {
	return &Monitor{
		Fetch:        fetch,
		Paths:        paths,
		Log:          log,
		Schedule:     AccountsForCycle,
		Now:          time.Now,
		Sleep:        time.Sleep,
		AccountDelay: 500 * time.Millisecond,
	}
}

// CycleResult aggregates what one cycle produced.
type CycleResult struct {
	Batches []types.FetchBatch
	Alerts  []types.Alert
}

// RunCycle polls every account scheduled for the cycle, filters to unseen
// tweets, classifies them, appends the alert and fetch logs, and persists
// state exactly once at the end. A single account's fetch failure is logged
// and skipped; the rest of the cycle proceeds.
func (m *Monitor) RunCycle(ctx context.Context, cycle int) (CycleResult, error) {
	state := store.LoadState(m.Paths.State(), m.Log)
	scheduled := m.Schedule(cycle)

	m.Log.WithFields(logrus.Fields{"cycle": cycle, "accounts": len(scheduled)}).Info("cycle start")

	var res CycleResult
	for i, acct := range scheduled {
		if i > 0 {
			m.Sleep(m.AccountDelay)
		}

		batch, err := m.Fetch(ctx, acct.Handle)
		if err != nil {
			m.Log.WithError(err).WithField("account", acct.Handle).Warn("fetch failed, skipping account")
			continue
		}
		if len(batch) == 0 {
			m.Log.WithField("account", acct.Handle).Debug("no tweets returned")
			continue
		}

		fresh := track.NewTweets(state.LastTweetIDs[acct.Handle], batch)
		state.LastTweetIDs[acct.Handle] = track.Advance(state.LastTweetIDs[acct.Handle], batch)
		if len(fresh) == 0 {
			m.Log.WithField("account", acct.Handle).Debug("no new tweets")
			continue
		}

		for _, t := range fresh {
			res.Alerts = append(res.Alerts, classify.Alerts(t, acct, m.Now())...)
		}
		res.Batches = append(res.Batches, types.FetchBatch{
			Account:   acct.Handle,
			Tweets:    fresh,
			FetchedAt: m.Now().UTC(),
			NewCount:  len(fresh),
		})
		m.Log.WithFields(logrus.Fields{"account": acct.Handle, "new": len(fresh)}).Info("new tweets")
	}

	state.LastRunAt = m.Now().UTC()
	state.TotalAlerts += len(res.Alerts)
	for _, b := range res.Batches {
		state.TotalFetched += len(b.Tweets)
	}

	if err := store.AppendBounded(m.Paths.Tweets(), store.TweetLogLimit, res.Batches); err != nil {
		return res, fmt.Errorf("append tweet log: %w", err)
	}
	if err := store.AppendBounded(m.Paths.Alerts(), store.AlertLogLimit, res.Alerts); err != nil {
		return res, fmt.Errorf("append alert log: %w", err)
	}
	if err := store.SaveState(m.Paths.State(), state); err != nil {
		return res, fmt.Errorf("save state: %w", err)
	}

	if m.PostAlert != nil {
		for _, a := range res.Alerts {
			if a.Severity != types.SeverityCritical {
				continue
			}
			if err := m.PostAlert(ctx, a); err != nil {
				m.Log.WithError(err).WithField("source", a.Source).Warn("alert post failed")
			}
		}
	}
	return res, nil
}

// Run drives cycles with a fixed inter-cycle delay. With loop=false a single
// cycle runs and any cycle error is returned; in continuous mode cycle
// errors are logged and the loop keeps going until ctx is done.
func (m *Monitor) Run(ctx context.Context, loop bool, interval time.Duration) error {
	for cycle := 1; ; cycle++ {
		if _, err := m.RunCycle(ctx, cycle); err != nil {
			if !loop {
				return err
			}
			m.Log.WithError(err).Error("cycle failed")
		}
		if !loop {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m.Log.Infof("next cycle in %s", interval)
		m.Sleep(interval)
	}
}
