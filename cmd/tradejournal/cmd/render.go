package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/rustyeddy/tradejournal/id"
	"github.com/rustyeddy/tradejournal/journal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func renderStats(w io.Writer, baseline float64, s journal.Stats, p journal.Performance) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{"Baseline", money(baseline)})
	table.Append([]string{"Balance", money(s.CurrentBalance)})
	table.Append([]string{"Net P/L", signedMoney(s.TotalProfit)})
	table.Append([]string{"Growth", fmt.Sprintf("%+.2f%%", s.GrowthPercent)})
	table.Append([]string{"Win rate", fmt.Sprintf("%.1f%%", s.WinRate)})
	table.Append([]string{"Winning days", fmt.Sprintf("%d / %d", s.WinningDays, p.Days)})
	table.Append([]string{"Executions", fmt.Sprintf("%d", s.TotalTrades)})
	if p.Days > 0 {
		table.Append([]string{"Average day", signedMoney(p.AverageProfit)})
		table.Append([]string{"Best day", signedMoney(p.BestDay)})
		table.Append([]string{"Worst day", signedMoney(p.WorstDay)})
		table.Append([]string{"Profit factor", fmt.Sprintf("%.2f", p.ProfitFactor)})
		table.Append([]string{"Max drawdown", fmt.Sprintf("%s (%.2f%%)", money(p.MaxDrawdown), p.MaxDrawdownPct)})
	}
	table.Render()
}

// renderMonth draws the grid one week per row. Recorded days show their P/L;
// today is marked with '*'.
func renderMonth(w io.Writer, g journal.MonthGrid) {
	fmt.Fprintf(w, "%s %d\n", g.Month, g.Year)

	table := tablewriter.NewWriter(w)
	table.SetHeader(weekdays)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetRowLine(true)

	for _, week := range g.Weeks() {
		row := make([]string, len(weekdays))
		for i, c := range week {
			row[i] = cellText(c)
		}
		table.Append(row)
	}
	table.Render()
}

func cellText(c *journal.Cell) string {
	if c == nil {
		return ""
	}
	day := fmt.Sprintf("%d", c.Day)
	if c.Today {
		day += "*"
	}
	if c.Entry == nil {
		return day
	}
	return day + "\n" + signedMoney(c.Entry.Profit)
}

func renderHistory(w io.Writer, entries []journal.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Trades", "P/L", "Recorded"})
	for _, e := range entries {
		recorded := ""
		if t, err := id.Time(e.ID); err == nil {
			recorded = t.Local().Format("2006-01-02 15:04")
		}
		table.Append([]string{e.Date.String(), fmt.Sprintf("%d", e.TradesCount), signedMoney(e.Profit), recorded})
	}
	table.SetFooter([]string{"", "", "", fmt.Sprintf("%d days", len(entries))})
	table.Render()
}

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func signedMoney(v float64) string {
	if v >= 0 {
		return "+" + money(v)
	}
	return money(v)
}
