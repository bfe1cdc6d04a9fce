package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mkamau/pesaflow/internal/analytics"
	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/mkamau/pesaflow/internal/service"
	"github.com/spf13/cobra"
)

func billsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bills",
		Short: "Forecast recurring bills from transaction history",
		Long: `Scan the stored transaction history for counterparties that are paid on
a regular cadence (weekly, biweekly, or monthly) and predict when each is
next due. Forecasts are recomputed from scratch on every run.`,
		RunE: runBills,
	}
}

func runBills(cmd *cobra.Command, _ []string) error {
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

	var clock service.Clock = service.SystemClock{}
	now := clock.Now()
	bills := analytics.DetectRecurringBills(txns, now)

	if len(bills) == 0 {
		fmt.Println(cli.InfoStyle.Render("No recurring bills detected yet. Ingest more history and try again.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Upcoming Bills")) //nolint:forbidigo // User-facing output
	fmt.Println()                                  //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Biller"),
		cli.HeaderStyle.Render("Typical Amount"),
		cli.HeaderStyle.Render("Cadence"),
		cli.HeaderStyle.Render("Last Paid"),
		cli.HeaderStyle.Render("Next Due")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 20),
		strings.Repeat("─", 14),
		strings.Repeat("─", 8),
		strings.Repeat("─", 12),
		strings.Repeat("─", 12)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, bill := range bills {
		due := bill.NextExpectedAt.Format("2006-01-02")
		if bill.NextExpectedAt.Before(now) {
			due = cli.WarningStyle.Render(due + " (overdue)")
		}
		if _, err := fmt.Fprintf(w, "%s\tKsh %.0f\t%s\t%s\t%s\n",
			bill.CounterpartyLabel,
			bill.TypicalAmount,
			bill.Cadence,
			bill.LastObservedAt.Format("2006-01-02"),
			due); err != nil {
			return fmt.Errorf("failed to write bill row: %w", err)
		}
	}

	return nil
}
