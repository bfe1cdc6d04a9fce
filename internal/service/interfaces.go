// Package service defines the interfaces between the application's
// components, allowing storage and time to be swapped out in tests.
package service

import (
	"context"
	"time"

	"github.com/mkamau/pesaflow/internal/model"
)

// Storage persists transaction records and their supporting data. The
// analytics functions never touch storage directly; callers load the history
// and pass it in.
type Storage interface {
	// SaveTransactions stores parsed records. Records whose confirmation
	// code is already present are ignored, making ingestion idempotent.
	SaveTransactions(ctx context.Context, txns []model.Transaction) error

	// ListTransactions returns all stored records ordered by date ascending.
	ListTransactions(ctx context.Context) ([]model.Transaction, error)

	// GetTransactionsByDateRange returns records with start <= date < end.
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error)

	// LatestTransaction returns the most recent record, or nil when the
	// history is empty.
	LatestTransaction(ctx context.Context) (*model.Transaction, error)

	// SetTransactionCategory assigns a category to a stored record.
	SetTransactionCategory(ctx context.Context, txnID, categoryID string) error

	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	RecordIngestRun(ctx context.Context, run model.IngestRun) error
	ListIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Clock abstracts the current time so analytics runs are deterministic in
// tests. The core functions take "now" as a plain argument; commands obtain
// it from a Clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
