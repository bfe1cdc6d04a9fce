package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/mkamau/pesaflow/internal/model"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List stored transaction records",
		RunE:  runTransactions,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, exclusive)")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
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

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	var txns []model.Transaction
	if fromStr != "" || toStr != "" {
		start, end, parseErr := parseDateRange(fromStr, toStr)
		if parseErr != nil {
			return parseErr
		}
		txns, err = store.GetTransactionsByDateRange(ctx, start, end)
	} else {
		txns, err = store.ListTransactions(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	if len(txns) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions stored. Use 'pesaflow ingest' to import messages.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Transactions (%d)", len(txns)))) //nolint:forbidigo // User-facing output
	fmt.Println()                                                             //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Kind"),
		cli.HeaderStyle.Render("Counterparty"),
		cli.HeaderStyle.Render("Amount"),
		cli.HeaderStyle.Render("Fee"))

	for i := range txns {
		txn := &txns[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tKsh %.2f\tKsh %.2f\n",
			txn.Date.Format("2006-01-02 15:04"),
			txn.ID,
			txn.Kind,
			txn.Counterparty,
			txn.Amount,
			txn.Fee)
	}

	return nil
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Now().AddDate(100, 0, 0)

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
		start = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		end = parsed
	}
	return start, end, nil
}
