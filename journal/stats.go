package journal

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Stats is the aggregate view over a set of entries.
type Stats struct {
	TotalProfit    float64
	TotalTrades    int
	WinningDays    int
	CurrentBalance float64
	WinRate        float64 // percent of days with profit > 0
	GrowthPercent  float64 // TotalProfit as a percent of the baseline
}

// Stats recomputes the statistics over every entry.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputeStats(e.baseline, e.entries)
}

// MonthStats is Stats restricted to the entries dated in the given month.
// month is zero-based, as in MonthGrid.
func (e *Engine) MonthStats(year, month int) Stats {
	m := MonthOf(year, month)

	e.mu.Lock()
	defer e.mu.Unlock()

	var in []Entry
	for _, ent := range e.entries {
		if ent.Date.Year() == m.Year && ent.Date.Month() == m.Month {
			in = append(in, ent)
		}
	}
	return ComputeStats(e.baseline, in)
}

// ComputeStats derives Stats from a baseline and entries. WinRate is 0 with
// no entries; GrowthPercent is 0 unless the baseline is positive.
func ComputeStats(baseline float64, entries []Entry) Stats {
	var s Stats
	for _, ent := range entries {
		s.TotalProfit += ent.Profit
		s.TotalTrades += ent.TradesCount
		if ent.Profit > 0 {
			s.WinningDays++
		}
	}
	s.CurrentBalance = baseline + s.TotalProfit
	if len(entries) > 0 {
		s.WinRate = float64(s.WinningDays) / float64(len(entries)) * 100
	}
	if baseline > 0 {
		s.GrowthPercent = s.TotalProfit / baseline * 100
	}
	return s
}

// Performance holds distribution and drawdown metrics over daily results.
type Performance struct {
	Days          int
	AverageProfit float64
	StdDevProfit  float64
	BestDay       float64
	WorstDay      float64
	GrossProfit   float64
	GrossLoss     float64 // absolute value of the losing days' sum
	ProfitFactor  float64 // GrossProfit / GrossLoss; 0 when there are no losing days

	// Drawdown of the equity curve that starts at the baseline and adds each
	// day chronologically.
	MaxDrawdown    float64
	MaxDrawdownPct float64
	MaxDrawdownAt  Date
}

// Performance computes rolling metrics over the whole journal.
func (e *Engine) Performance() (Performance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputePerformance(e.baseline, e.entries)
}

// ComputePerformance derives Performance from a baseline and entries in any order.
func ComputePerformance(baseline float64, entries []Entry) (Performance, error) {
	var p Performance
	if len(entries) == 0 {
		return p, nil
	}

	asc := append([]Entry(nil), entries...)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Date.Before(asc[j].Date) })

	profits := make(stats.Float64Data, len(asc))
	for i, ent := range asc {
		profits[i] = ent.Profit
		if ent.Profit > 0 {
			p.GrossProfit += ent.Profit
		} else {
			p.GrossLoss -= ent.Profit
		}
	}
	p.Days = len(asc)

	var err error
	if p.AverageProfit, err = profits.Mean(); err != nil {
		return p, err
	}
	if p.StdDevProfit, err = profits.StandardDeviation(); err != nil {
		return p, err
	}
	if p.BestDay, err = profits.Max(); err != nil {
		return p, err
	}
	if p.WorstDay, err = profits.Min(); err != nil {
		return p, err
	}
	if p.GrossLoss > 0 {
		p.ProfitFactor = p.GrossProfit / p.GrossLoss
	}

	peak, equity := baseline, baseline
	for _, ent := range asc {
		equity += ent.Profit
		if equity > peak {
			peak = equity
			continue
		}
		if dd := peak - equity; dd > p.MaxDrawdown {
			p.MaxDrawdown = dd
			p.MaxDrawdownAt = ent.Date
			if peak > 0 {
				p.MaxDrawdownPct = dd / peak * 100
			}
		}
	}
	return p, nil
}
