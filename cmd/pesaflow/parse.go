package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/mkamau/pesaflow/internal/mpesa"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <message>",
		Short: "Parse a single message and print the extracted record",
		Long: `Parse one confirmation message and show every extracted field. Nothing
is stored; this is a debugging aid for checking how a message shape is
interpreted.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
}

func runParse(_ *cobra.Command, args []string) error {
	txn, err := mpesa.NewParser().Parse(args[0], time.Now())
	if err != nil {
		if errors.Is(err, mpesa.ErrNotRecognized) {
			fmt.Println(cli.FormatWarning("Not a recognized transaction message (missing confirmation anchor).")) //nolint:forbidigo // User-facing output
			return nil
		}
		return err
	}

	fmt.Println(cli.FormatTitle("Parsed Transaction")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", txn.ID)
	fmt.Fprintf(w, "Kind\t%s\n", txn.Kind)
	fmt.Fprintf(w, "Counterparty\t%s\n", txn.Counterparty)
	fmt.Fprintf(w, "Amount\tKsh %.2f\n", txn.Amount)
	fmt.Fprintf(w, "Fee\tKsh %.2f\n", txn.Fee)
	fmt.Fprintf(w, "Balance after\tKsh %.2f\n", txn.BalanceAfter)
	fmt.Fprintf(w, "Date\t%s\n", txn.Date.Format("2006-01-02 15:04"))
	return w.Flush()
}
