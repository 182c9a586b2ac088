package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/analytics"
	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
	"github.com/loaishar/RealEstateManager/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary FILE...",
	Short: "Totals and completion per unit, one unit per file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, args []string) error {
	when, err := asOf()
	if err != nil {
		return err
	}
	if flagUnit != "" && len(args) > 1 {
		return fmt.Errorf("--unit names a single file, got %d files", len(args))
	}

	sources := make([]pipeline.Source, len(args))
	for i, path := range args {
		sources[i] = pipeline.Source{Path: path, Unit: unitName(path)}
	}
	units, err := pipeline.Load(sources, func(src pipeline.Source) (model.Unit, error) {
		return readUnit(src.Path, src.Unit)
	}, nil)
	if err != nil {
		return err
	}
	l, err := ledger.New(units...)
	if err != nil {
		return err
	}

	cur := cli.NewCurrency(cfg.Currency)
	summaries := analytics.SummarizeLedger(l)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SUMMARY  %d unit(s)  as of %s", len(summaries), cli.FormatDate(when))))
	fmt.Println()

	rows := make([][]string, 0, len(summaries)+2)
	for _, s := range summaries {
		rows = append(rows, summaryRow(cur, s))
	}
	if len(summaries) > 1 {
		rows = append(rows, []string{"---"}, summaryRow(cur, analytics.Total("All units", summaries)))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Unit", "Payments", "Total", "Covered", "Remaining", "Complete"},
		Rows:    rows,
	}))

	for _, u := range l.Units() {
		printUnitBreakdown(cur, u, when)
	}
	return nil
}

func summaryRow(cur cli.Currency, s analytics.UnitSummary) []string {
	return []string{
		s.Unit,
		fmt.Sprintf("%d/%d", s.CoveredPayments, s.Payments),
		cur.Format(s.TotalAmount),
		cur.Format(s.CoveredAmount),
		cur.Format(s.RemainingAmount),
		cli.FormatPercent(s.CompletionPercentage),
	}
}

func printUnitBreakdown(cur cli.Currency, u model.Unit, when time.Time) {
	s := analytics.Summarize(u)

	fmt.Println()
	fmt.Printf("  %s  %s\n", u.Name, cli.RenderProgressBar(s.CompletionPercentage, 30))

	breakdown := analytics.StatusBreakdown(u.Payments, when, cfg.General.UpcomingWindowDays)
	maxAmount := 0.0
	for _, c := range breakdown {
		maxAmount = max(maxAmount, c.Amount.InexactFloat64())
	}
	for _, c := range breakdown {
		label := fmt.Sprintf("%-10s %3d  %16s", c.Status.Title(), c.Count, cur.Format(c.Amount))
		fmt.Println(cli.RenderHorizontalBar(label, c.Amount.InexactFloat64(), maxAmount, 20))
	}

	if p, ok := analytics.NextDue(u.Payments, when); ok {
		fmt.Printf("  Next due:   %s  %s  %s (%s)\n",
			p.Milestone, cur.Format(p.Amount), cli.FormatDate(p.DueDate), cli.FormatRelativeDays(p.DueDate, when))
	} else {
		fmt.Println(cli.RenderMuted("  Nothing left to pay."))
	}

	if months := analytics.Monthly(u.Payments); len(months) > 1 {
		values := make([]float64, len(months))
		for i, m := range months {
			values[i] = m.Amount.InexactFloat64()
		}
		fmt.Printf("  By month:   %s  %s to %s\n", cli.RenderSparkline(values),
			months[0].Month.Format("Jan 2006"), months[len(months)-1].Month.Format("Jan 2006"))
	}
}
