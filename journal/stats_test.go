package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Date: MustDate("2024-01-01"), TradesCount: 3, Profit: 100},
		{Date: MustDate("2024-01-02"), TradesCount: 2, Profit: -40},
		{Date: MustDate("2024-01-03"), TradesCount: 1, Profit: 0},
	}

	tests := []struct {
		name     string
		baseline float64
		entries  []Entry
		want     Stats
	}{
		{
			name:     "mixed days",
			baseline: 10000,
			entries:  entries,
			want: Stats{
				TotalProfit:    60,
				TotalTrades:    6,
				WinningDays:    1,
				CurrentBalance: 10060,
				WinRate:        100.0 / 3,
				GrowthPercent:  0.6,
			},
		},
		{
			name:     "empty journal",
			baseline: 10000,
			want:     Stats{CurrentBalance: 10000},
		},
		{
			name:     "zero baseline",
			baseline: 0,
			entries:  entries,
			want: Stats{
				TotalProfit:    60,
				TotalTrades:    6,
				WinningDays:    1,
				CurrentBalance: 60,
				WinRate:        100.0 / 3,
			},
		},
		{
			name:     "negative baseline",
			baseline: -500,
			entries:  entries[:1],
			want: Stats{
				TotalProfit:    100,
				TotalTrades:    3,
				WinningDays:    1,
				CurrentBalance: -400,
				WinRate:        100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.baseline, tt.entries)
			assert.InDelta(t, tt.want.TotalProfit, got.TotalProfit, 1e-9)
			assert.Equal(t, tt.want.TotalTrades, got.TotalTrades)
			assert.Equal(t, tt.want.WinningDays, got.WinningDays)
			assert.InDelta(t, tt.want.CurrentBalance, got.CurrentBalance, 1e-9)
			assert.InDelta(t, tt.want.WinRate, got.WinRate, 1e-9)
			assert.InDelta(t, tt.want.GrowthPercent, got.GrowthPercent, 1e-9)
		})
	}
}

func TestEngineStatsTracksMutations(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	assert.Equal(t, Stats{CurrentBalance: 10000}, e.Stats())

	_, err := e.UpsertEntry(MustDate("2024-02-01"), 2, 250)
	require.NoError(t, err)
	require.NoError(t, e.SetAccountBaseline(5000))

	s := e.Stats()
	assert.InDelta(t, 5250, s.CurrentBalance, 1e-9)
	assert.InDelta(t, 5, s.GrowthPercent, 1e-9)
	assert.InDelta(t, 100, s.WinRate, 1e-9)
}

func TestMonthStats(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	for _, r := range []struct {
		date   string
		profit float64
	}{
		{"2024-01-31", 500},
		{"2024-02-01", 100},
		{"2024-02-29", -50},
		{"2024-03-01", 900},
	} {
		_, err := e.UpsertEntry(MustDate(r.date), 1, r.profit)
		require.NoError(t, err)
	}

	s := e.MonthStats(2024, 1)
	assert.InDelta(t, 50, s.TotalProfit, 1e-9)
	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 50, s.WinRate, 1e-9)
	assert.InDelta(t, 10050, s.CurrentBalance, 1e-9)

	assert.Equal(t, Stats{CurrentBalance: 10000}, e.MonthStats(2024, 5))
}

func TestComputePerformance(t *testing.T) {
	t.Parallel()

	// Given newest first, as the engine lists them.
	entries := []Entry{
		{Date: MustDate("2024-01-05"), Profit: 300},
		{Date: MustDate("2024-01-04"), Profit: -100},
		{Date: MustDate("2024-01-03"), Profit: -200},
		{Date: MustDate("2024-01-02"), Profit: 0},
		{Date: MustDate("2024-01-01"), Profit: 500},
	}

	p, err := ComputePerformance(1000, entries)
	require.NoError(t, err)

	assert.Equal(t, 5, p.Days)
	assert.InDelta(t, 100, p.AverageProfit, 1e-9)
	assert.InDelta(t, 500, p.BestDay, 1e-9)
	assert.InDelta(t, -200, p.WorstDay, 1e-9)
	assert.InDelta(t, 800, p.GrossProfit, 1e-9)
	assert.InDelta(t, 300, p.GrossLoss, 1e-9)
	assert.InDelta(t, 800.0/300, p.ProfitFactor, 1e-9)
	// population stddev of [500 0 -200 -100 300]
	assert.InDelta(t, 260.768096208106, p.StdDevProfit, 1e-9)

	// equity 1500, 1500, 1300, 1200, 1500: peak 1500, trough 1200
	assert.InDelta(t, 300, p.MaxDrawdown, 1e-9)
	assert.InDelta(t, 20, p.MaxDrawdownPct, 1e-9)
	assert.Equal(t, MustDate("2024-01-04"), p.MaxDrawdownAt)
}

func TestComputePerformanceEdgeCases(t *testing.T) {
	t.Parallel()

	p, err := ComputePerformance(1000, nil)
	require.NoError(t, err)
	assert.Equal(t, Performance{}, p)

	p, err = ComputePerformance(1000, []Entry{
		{Date: MustDate("2024-01-01"), Profit: 10},
		{Date: MustDate("2024-01-02"), Profit: 20},
	})
	require.NoError(t, err)
	assert.Zero(t, p.ProfitFactor)
	assert.Zero(t, p.MaxDrawdown)
	assert.True(t, p.MaxDrawdownAt.IsZero())
}
