package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loaishar/RealEstateManager/internal/analytics"
	"github.com/loaishar/RealEstateManager/internal/cli"
	"github.com/loaishar/RealEstateManager/internal/ledger"
	"github.com/loaishar/RealEstateManager/internal/model"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule FILE",
	Short: "Payment schedule with cumulative amounts and statuses",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedule,
}

var (
	scheduleStatus string
	scheduleSearch string
)

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleStatus, "status", "s", "", "Only show completed, upcoming, overdue or scheduled payments")
	scheduleCmd.Flags().StringVar(&scheduleSearch, "search", "", "Only show milestones containing this text")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(_ *cobra.Command, args []string) error {
	when, err := asOf()
	if err != nil {
		return err
	}
	var status model.Status
	if scheduleStatus != "" {
		var ok bool
		if status, ok = model.ParseStatus(scheduleStatus); !ok {
			return fmt.Errorf("unknown status %q", scheduleStatus)
		}
	}

	u, err := readUnit(args[0], unitName(args[0]))
	if err != nil {
		return err
	}
	if len(u.Payments) == 0 {
		fmt.Println("\n  No payments found.")
		return nil
	}

	window := cfg.General.UpcomingWindowDays
	payments := ledger.Filter(u.Payments, ledger.Query{
		Search: scheduleSearch,
		Status: status,
		AsOf:   when,
		Window: window,
	})

	cur := cli.NewCurrency(cfg.Currency)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCHEDULE  %s  as of %s", u.Name, cli.FormatDate(when))))
	fmt.Println()

	if len(payments) == 0 {
		fmt.Println("  No payments match the filter.")
		return nil
	}

	rows := make([][]string, 0, len(payments)+2)
	for _, p := range payments {
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.Index(p.ID)+1),
			truncate(p.Milestone, 28),
			cli.FormatDate(p.DueDate),
			cur.Format(p.Amount),
			cur.Format(p.Cumulative),
			cli.RenderStatus(ledger.ClassifyStatus(p, when, window)),
			cli.FormatCovered(p.Covered),
			cli.FormatRelativeDays(p.DueDate, when),
		})
	}

	s := analytics.Summarize(model.Unit{Name: u.Name, Payments: payments})
	rows = append(rows,
		[]string{"---"},
		[]string{"", "Total", "", cur.Format(s.TotalAmount), "", "", cli.FormatPercent(s.CompletionPercentage), ""},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Milestone", "Due Date", "Amount", "Cumulative", "Status", "Covered", "Due"},
		Rows:    rows,
	}))

	if len(payments) < len(u.Payments) {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  showing %d of %d payments", len(payments), len(u.Payments))))
	}
	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
