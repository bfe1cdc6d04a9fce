package storage

import (
	"context"
	"fmt"

	"github.com/mkamau/pesaflow/internal/model"
)

// RecordIngestRun appends one ingest batch to the audit log.
func (s *SQLiteStorage) RecordIngestRun(ctx context.Context, run model.IngestRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(run.ID, "run.ID"); err != nil {
		return err
	}
	if err := validateString(run.Source, "run.Source"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, source, total, parsed, skipped, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Total, run.Parsed, run.Skipped, run.StartedAt, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record ingest run: %w", err)
	}
	return nil
}

// ListIngestRuns returns the most recent ingest runs, newest first. A limit
// of 0 or less returns all runs.
func (s *SQLiteStorage) ListIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, total, parsed, skipped, started_at, completed_at
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.IngestRun
	for rows.Next() {
		var run model.IngestRun
		if err := rows.Scan(&run.ID, &run.Source, &run.Total, &run.Parsed,
			&run.Skipped, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingest run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingest runs: %w", err)
	}
	return runs, nil
}
