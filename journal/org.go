package journal

import (
	"fmt"
	"strings"
)

// FormatStatsOrg renders statistics and performance as an Org-mode block with
// all figures in a PROPERTIES drawer.
func FormatStatsOrg(baseline float64, s Stats, p Performance) string {
	var b strings.Builder
	b.WriteString("* Journal Summary\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":BASELINE: %.2f\n", baseline))
	b.WriteString(fmt.Sprintf(":BALANCE: %.2f\n", s.CurrentBalance))
	b.WriteString(fmt.Sprintf(":NET_PL: %.2f\n", s.TotalProfit))
	b.WriteString(fmt.Sprintf(":GROWTH_PCT: %.2f\n", s.GrowthPercent))
	b.WriteString(fmt.Sprintf(":WIN_RATE: %.1f\n", s.WinRate))
	b.WriteString(fmt.Sprintf(":WINNING_DAYS: %d\n", s.WinningDays))
	b.WriteString(fmt.Sprintf(":TRADES: %d\n", s.TotalTrades))
	b.WriteString(":END:\n")

	if p.Days == 0 {
		return b.String()
	}

	b.WriteString("\n** Performance\n")
	b.WriteString(fmt.Sprintf("- Days: %d\n", p.Days))
	b.WriteString(fmt.Sprintf("- Average day: %.2f (stddev %.2f)\n", p.AverageProfit, p.StdDevProfit))
	b.WriteString(fmt.Sprintf("- Best / worst day: %.2f / %.2f\n", p.BestDay, p.WorstDay))
	b.WriteString(fmt.Sprintf("- Profit factor: %.2f\n", p.ProfitFactor))
	if p.MaxDrawdown > 0 {
		b.WriteString(fmt.Sprintf("- Max drawdown: %.2f (%.2f%%) on %s\n", p.MaxDrawdown, p.MaxDrawdownPct, p.MaxDrawdownAt))
	} else {
		b.WriteString("- Max drawdown: none\n")
	}
	return b.String()
}

// FormatHistoryOrg renders entries as an Org table in the order given.
func FormatHistoryOrg(entries []Entry) string {
	var b strings.Builder
	b.WriteString("| Date | Trades | P/L | ID |\n")
	b.WriteString("|------+--------+-----+----|\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n", e.Date, e.TradesCount, signed(e.Profit), shortID(e.ID)))
	}
	return b.String()
}

func signed(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// shortID keeps the random tail of a ULID; the head is the timestamp and
// repeats for entries created close together.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
