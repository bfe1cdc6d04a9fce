package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mkamau/pesaflow/internal/cli"
	"github.com/mkamau/pesaflow/internal/common"
	"github.com/mkamau/pesaflow/internal/model"
	"github.com/mkamau/pesaflow/internal/mpesa"
	"github.com/mkamau/pesaflow/internal/service"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Import M-PESA messages from a file",
		Long: `Read confirmation messages (one per line) from a file and store the
extracted transaction records. Use "-" to read from stdin.

Messages without the confirmation anchor are counted and skipped; everything
else is stored, with unparsed fields degraded to documented defaults.
Re-ingesting the same file is safe: records are keyed on the vendor
confirmation code.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := args[0]

	var reader io.Reader
	if source == "-" {
		reader = cmd.InOrStdin()
		source = "stdin"
	} else {
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("failed to open messages file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	messages, err := readMessages(reader)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return common.NewUserError("no messages found in "+source, common.ErrNoMessages)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return common.NewUserError("failed to open the transaction database", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", nil)
		}
	}()

	var clock service.Clock = service.SystemClock{}
	parser := mpesa.NewParser()
	startedAt := clock.Now()

	bar := progressbar.NewOptions(len(messages),
		progressbar.OptionSetDescription("Parsing messages"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var parsed []model.Transaction
	var skipped int
	for _, msg := range messages {
		txn, parseErr := parser.Parse(msg, clock.Now())
		if parseErr != nil {
			if !errors.Is(parseErr, mpesa.ErrNotRecognized) {
				return fmt.Errorf("failed to parse message: %w", parseErr)
			}
			skipped++
			common.LogDebug("Skipped unrecognized message", common.Fields{"text": truncate(msg, 40)})
		} else {
			parsed = append(parsed, *txn)
		}
		_ = bar.Add(1)
	}

	if len(parsed) > 0 {
		if err := store.SaveTransactions(ctx, parsed); err != nil {
			return fmt.Errorf("failed to save transactions: %w", err)
		}
	}

	run := model.IngestRun{
		ID:          uuid.New().String(),
		Source:      source,
		Total:       len(messages),
		Parsed:      len(parsed),
		Skipped:     skipped,
		StartedAt:   startedAt,
		CompletedAt: clock.Now(),
	}
	if err := store.RecordIngestRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record ingest run: %w", err)
	}

	common.LogInfo("Ingest complete", common.Fields{
		"source":  source,
		"total":   run.Total,
		"parsed":  run.Parsed,
		"skipped": run.Skipped,
	})

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d of %d messages (%d not recognized)", //nolint:forbidigo // User-facing output
		run.Parsed, run.Total, run.Skipped)))
	return nil
}

// readMessages reads one message per line, skipping blank lines.
func readMessages(r io.Reader) ([]string, error) {
	var messages []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			messages = append(messages, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return messages, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
