package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query daily journal entries",
	Long: `Record daily results and query the trading journal.

Subcommands:
  add      - Record (or replace) the result for a day
  today    - Show what is recorded for today
  stats    - Account statistics and performance
  month    - Calendar view of a month
  history  - All recorded days, newest first
  baseline - Show or set the account baseline
  export   - Write entries as CSV
  import   - Read entries from CSV

Examples:
  tradejournal journal add 2024-01-15 --trades 3 --profit 125.50
  tradejournal journal month 2024-01
  tradejournal journal baseline 25000`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <YYYY-MM-DD>",
	Short: "Record the result for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalAdd,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show what is recorded for today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show account statistics and performance",
	Args:  cobra.NoArgs,
	RunE:  runJournalStats,
}

var journalMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show a month calendar (default: current month)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalMonth,
}

var journalHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded days, newest first",
	Args:  cobra.NoArgs,
	RunE:  runJournalHistory,
}

var journalBaselineCmd = &cobra.Command{
	Use:   "baseline [value]",
	Short: "Show or set the account baseline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalBaseline,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write entries as CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import entries from CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalImport,
}

var (
	addTrades   int
	addProfit   float64
	monthOffset int
	statsOrg    bool
	historyOrg  bool
	exportPath  string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalStatsCmd)
	journalCmd.AddCommand(journalMonthCmd)
	journalCmd.AddCommand(journalHistoryCmd)
	journalCmd.AddCommand(journalBaselineCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalImportCmd)

	journalAddCmd.Flags().IntVarP(&addTrades, "trades", "t", 0, "number of executions that day")
	journalAddCmd.Flags().Float64VarP(&addProfit, "profit", "P", 0, "net profit (negative for a loss)")

	journalMonthCmd.Flags().IntVarP(&monthOffset, "offset", "o", 0, "months to move from the selected month (-1 = previous)")

	journalStatsCmd.Flags().BoolVar(&statsOrg, "org", false, "print as an Org-mode block")
	journalHistoryCmd.Flags().BoolVar(&historyOrg, "org", false, "print as an Org-mode table")

	journalExportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default stdout)")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	date, err := journal.ParseDate(args[0])
	if err != nil {
		return err
	}
	if addTrades < 0 {
		return fmt.Errorf("--trades must not be negative")
	}

	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	_, existed := e.Entry(date)
	ent, err := e.UpsertEntry(date, addTrades, addProfit)
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}

	verb := "Recorded"
	if existed {
		verb = "Updated"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s %s: %d trades, %s %s\n", verb, ent.Date, ent.TradesCount, signedMoney(ent.Profit), cfg.Journal.Currency)
	s := e.Stats()
	fmt.Fprintf(out, "  Balance: %s (%+.2f%%)\n", money(s.CurrentBalance), s.GrowthPercent)
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	d := e.Draft(e.Selected())
	out := cmd.OutOrStdout()
	if !d.Existing {
		fmt.Fprintf(out, "%s: nothing recorded\n", d.Date)
		return nil
	}
	fmt.Fprintf(out, "%s: %d trades, %s %s\n", d.Date, d.TradesCount, signedMoney(d.Profit), cfg.Journal.Currency)
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	perf, err := e.Performance()
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	out := cmd.OutOrStdout()
	if statsOrg {
		fmt.Fprint(out, journal.FormatStatsOrg(e.AccountBaseline(), e.Stats(), perf))
		return nil
	}
	renderStats(out, e.AccountBaseline(), e.Stats(), perf)
	return nil
}

func runJournalMonth(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	sel := e.Selected()
	m := journal.Month{Year: sel.Year(), Month: sel.Month()}
	if len(args) == 1 {
		if m, err = journal.ParseMonth(args[0]); err != nil {
			return fmt.Errorf("month %q: expected YYYY-MM", args[0])
		}
	}
	m = m.Add(monthOffset)

	out := cmd.OutOrStdout()
	renderMonth(out, e.Grid(m))
	s := e.MonthStats(m.Year, m.Index())
	fmt.Fprintf(out, "Month P/L: %s  Trades: %d  Win rate: %.1f%%\n", signedMoney(s.TotalProfit), s.TotalTrades, s.WinRate)
	return nil
}

func runJournalHistory(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	if historyOrg {
		fmt.Fprint(out, journal.FormatHistoryOrg(e.Entries()))
		return nil
	}
	renderHistory(out, e.Entries())
	return nil
}

func runJournalBaseline(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "Baseline: %s %s\n", money(e.AccountBaseline()), cfg.Journal.Currency)
		return nil
	}

	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("baseline %q: %w", args[0], err)
	}
	if v <= 0 {
		logger.WithField("baseline", v).Warn("non-positive baseline; growth will read 0%")
	}
	if err := e.SetAccountBaseline(v); err != nil {
		return fmt.Errorf("set baseline: %w", err)
	}
	fmt.Fprintf(out, "✓ Baseline set to %s %s\n", money(v), cfg.Journal.Currency)
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	if exportPath == "" {
		return journal.WriteCSV(cmd.OutOrStdout(), e.Entries())
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return err
	}
	if err := journal.WriteCSV(f, e.Entries()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d entries to %s\n", len(e.Entries()), exportPath)
	return nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := journal.ReadCSV(f)
	if err != nil {
		return err
	}

	e, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := e.Import(rows)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d rows from %s\n", n, args[0])
	return nil
}
