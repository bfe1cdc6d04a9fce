package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/mkamau/pesaflow/internal/analytics"
	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/mkamau/pesaflow/internal/common"
	"github.com/mkamau/pesaflow/internal/model"
	"github.com/mkamau/pesaflow/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func velocityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "velocity",
		Short: "Report this month's spending pace against budget",
		Long: `Compare month-to-date spending against a linear pro-rata budget
expectation and project the end-of-month balance.

The monthly budget comes from --budget or the "budget.monthly" config key.
The current balance defaults to the balance reported by the most recent
stored message; override it with --balance.`,
		RunE: runVelocity,
	}

	cmd.Flags().Float64("budget", 0, "monthly budget (overrides config)")
	cmd.Flags().Float64("balance", -1, "current balance (default: from latest message)")
	_ = viper.BindPFlag("budget.monthly", cmd.Flags().Lookup("budget"))

	return cmd
}

func runVelocity(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	txns, err := store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(txns) == 0 {
		return common.NewUserError("no transactions in history, run 'pesaflow ingest' first", common.ErrEmptyHistory)
	}

	budget := viper.GetFloat64("budget.monthly")

	balance, err := cmd.Flags().GetFloat64("balance")
	if err != nil {
		return err
	}
	if balance < 0 {
		balance = 0
		latest, latestErr := store.LatestTransaction(ctx)
		if latestErr != nil {
			return fmt.Errorf("failed to load latest transaction: %w", latestErr)
		}
		if latest != nil {
			balance = latest.BalanceAfter
		}
	}

	var clock service.Clock = service.SystemClock{}
	report := analytics.CalculateSpendingVelocity(txns, budget, balance, clock.Now())

	fmt.Println(cli.FormatTitle("Spending Velocity")) //nolint:forbidigo // User-facing output
	fmt.Println()                                     //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Status\t%s\n", renderStatus(report.Status))
	fmt.Fprintf(w, "Spent this month\tKsh %.2f\n", report.MonthlyExpenses)
	fmt.Fprintf(w, "Daily burn rate\tKsh %.2f\n", report.DailyBurnRate)
	fmt.Fprintf(w, "Velocity ratio\t%.2f\n", report.VelocityRatio)
	fmt.Fprintf(w, "Projected end balance\tKsh %.2f\n", report.ProjectedEndBalance)
	fmt.Fprintf(w, "Days remaining\t%d of %d\n", report.DaysRemaining, report.DaysInMonth)
	return w.Flush()
}

func renderStatus(status model.VelocityStatus) string {
	switch status {
	case model.VelocityOver:
		return cli.ErrorStyle.Render("over budget pace")
	case model.VelocityUnder:
		return cli.SuccessStyle.Render("under budget pace")
	default:
		return cli.InfoStyle.Render("on track")
	}
}
