package monitor

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warroom-monitor/internal/accounts"
	"warroom-monitor/internal/store"
	"warroom-monitor/internal/track"
	"warroom-monitor/internal/types"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestMonitor(t *testing.T, fetch Fetcher, roster []accounts.Account) *Monitor {
	t.Helper()
	m := New(fetch, store.Paths{DataDir: t.TempDir()}, discardLogger())
	m.Schedule = func(int) []accounts.Account { return roster }
	m.Now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) }
	m.Sleep = func(time.Duration) {}
	return m
}

func TestSchedulerCadence(t *testing.T) {
	for cycle := 1; cycle <= 9; cycle++ {
		scheduled := AccountsForCycle(cycle)
		tiers := map[types.Tier]int{}
		for _, a := range scheduled {
			tiers[a.Tier]++
		}

		assert.Equal(t, len(accounts.Critical), tiers[types.TierCritical], "cycle %d", cycle)
		assert.Equal(t, len(accounts.High), tiers[types.TierHigh], "cycle %d", cycle)

		wantStandard := 0
		if cycle%3 == 0 {
			wantStandard = len(accounts.Standard) + len(accounts.Competitors)
		}
		assert.Equal(t, wantStandard, tiers[types.TierStandard], "cycle %d", cycle)
	}
}

func TestSchedulerTierOrder(t *testing.T) {
	scheduled := AccountsForCycle(3)
	require.NotEmpty(t, scheduled)
	assert.Equal(t, types.TierCritical, scheduled[0].Tier)
	assert.Equal(t, types.TierStandard, scheduled[len(scheduled)-1].Tier)
}

func TestCycleEndToEnd(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Role: "Founder", Org: "Alpha Labs", Tier: types.TierHigh}
	batch := []types.Tweet{
		{ID: "105", Text: "We are excited to advise this team, shipping fast", AuthorHandle: "alpha"},
		{ID: "103", Text: "We are excited to advise this team, shipping fast", AuthorHandle: "alpha"},
		{ID: "101", Text: "We are excited to advise this team, shipping fast", AuthorHandle: "alpha"},
	}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		require.Equal(t, "alpha", handle)
		return batch, nil
	}, []accounts.Account{alpha})

	require.NoError(t, store.SaveState(m.Paths.State(), types.MonitorState{
		LastTweetIDs: map[string]string{"alpha": "100"},
	}))

	res, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, res.Batches, 1)
	assert.Equal(t, 3, res.Batches[0].NewCount)

	require.Len(t, res.Alerts, 3)
	for _, a := range res.Alerts {
		assert.Equal(t, types.SignalAdvisorSignal, a.Type)
		assert.Equal(t, types.SeverityMedium, a.Severity)
		assert.Equal(t, "@alpha", a.Source)
	}

	state := store.LoadState(m.Paths.State(), discardLogger())
	assert.Equal(t, "105", state.LastTweetIDs["alpha"])
	assert.Equal(t, 3, state.TotalAlerts)
	assert.Equal(t, 3, state.TotalFetched)

	var persisted []types.Alert
	_, err = store.ReadJSON(m.Paths.Alerts(), &persisted)
	require.NoError(t, err)
	assert.Len(t, persisted, 3)
}

func TestCycleIsIdempotentOnRefeed(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	batch := []types.Tweet{{ID: "105", Text: "shipping"}, {ID: "103", Text: "shipping"}}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		return batch, nil
	}, []accounts.Account{alpha})
	require.NoError(t, store.SaveState(m.Paths.State(), types.MonitorState{
		LastTweetIDs: map[string]string{"alpha": "100"},
	}))

	first, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, first.Batches, 1)

	// Same upstream data again: nothing is new, totals do not move.
	second, err := m.RunCycle(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, second.Batches)
	assert.Empty(t, second.Alerts)

	state := store.LoadState(m.Paths.State(), discardLogger())
	assert.Equal(t, 2, state.TotalFetched)
}

func TestStaleBatchStillAdvancesWatermark(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		return []types.Tweet{{ID: "250"}, {ID: "240"}}, nil
	}, []accounts.Account{alpha})
	require.NoError(t, store.SaveState(m.Paths.State(), types.MonitorState{
		LastTweetIDs: map[string]string{"alpha": "300"},
	}))

	res, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Batches)

	state := store.LoadState(m.Paths.State(), discardLogger())
	assert.Equal(t, "250", state.LastTweetIDs["alpha"])
}

func TestFetchFailureDoesNotAbortCycle(t *testing.T) {
	broken := accounts.Account{Handle: "broken", Name: "Broken", Tier: types.TierHigh}
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		if handle == "broken" {
			return nil, errors.New("upstream down")
		}
		return []types.Tweet{{ID: "5", Text: "hackathon"}}, nil
	}, []accounts.Account{broken, alpha})

	res, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)
	assert.Equal(t, "alpha", res.Batches[0].Account)

	state := store.LoadState(m.Paths.State(), discardLogger())
	assert.NotContains(t, state.LastTweetIDs, "broken")
}

func TestEmptyBatchLeavesWatermarkAlone(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		return nil, nil
	}, []accounts.Account{alpha})
	require.NoError(t, store.SaveState(m.Paths.State(), types.MonitorState{
		LastTweetIDs: map[string]string{"alpha": "42"},
	}))

	_, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)

	state := store.LoadState(m.Paths.State(), discardLogger())
	assert.Equal(t, "42", state.LastTweetIDs["alpha"])
}

func TestFirstRunBackfillBound(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	batch := make([]types.Tweet, 0, 12)
	for i := 112; i > 100; i-- {
		batch = append(batch, types.Tweet{ID: strconv.Itoa(i), Text: "hackathon"})
	}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		return batch, nil
	}, []accounts.Account{alpha})

	res, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)
	assert.Equal(t, track.FirstRunLimit, res.Batches[0].NewCount)
}

func TestSingleShotRunsExactlyOneCycle(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	calls := 0
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		calls++
		return nil, nil
	}, []accounts.Account{alpha})

	require.NoError(t, m.Run(context.Background(), false, time.Minute))
	assert.Equal(t, 1, calls)
}

func TestLoopStopsWhenContextCancelled(t *testing.T) {
	alpha := accounts.Account{Handle: "alpha", Name: "Alpha", Tier: types.TierHigh}
	ctx, cancel := context.WithCancel(context.Background())

	cycles := 0
	m := newTestMonitor(t, func(c context.Context, handle string) ([]types.Tweet, error) {
		cycles++
		if cycles == 3 {
			cancel()
		}
		return nil, nil
	}, []accounts.Account{alpha})

	err := m.Run(ctx, true, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, cycles)
}

func TestCriticalAlertsArePosted(t *testing.T) {
	boss := accounts.Account{Handle: "forgepad", Name: "Forgepad", Org: "Forgepad", Tier: types.TierCritical}
	m := newTestMonitor(t, func(ctx context.Context, handle string) ([]types.Tweet, error) {
		return []types.Tweet{{ID: "9", Text: "the winner is announced"}}, nil
	}, []accounts.Account{boss})

	var posted []types.Alert
	m.PostAlert = func(ctx context.Context, a types.Alert) error {
		posted = append(posted, a)
		return nil
	}

	res, err := m.RunCycle(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, res.Alerts)
	require.Len(t, posted, 1)
	assert.Equal(t, types.SeverityCritical, posted[0].Severity)
}
