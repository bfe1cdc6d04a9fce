package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkamau/pesaflow/internal/common"
	"github.com/mkamau/pesaflow/internal/model"
)

// SaveTransactions stores parsed records. Ingestion is idempotent: records
// whose confirmation code is already present are silently skipped so the
// same message file can be imported twice without duplicates.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(txns); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, kind, counterparty, amount,
			fee, balance_after, source_text, category_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range txns {
		txn := &txns[i]
		var categoryID any
		if txn.CategoryID != "" {
			categoryID = txn.CategoryID
		}
		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.Hash, txn.Date, string(txn.Kind), txn.Counterparty,
			txn.Amount, txn.Fee, txn.BalanceAfter, txn.SourceText, categoryID,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

const transactionColumns = `id, hash, date, kind, counterparty, amount, fee, balance_after, source_text, COALESCE(category_id, '')`

// ListTransactions returns all stored records ordered by date ascending.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactionsByDateRange returns records with start <= date < end.
func (s *SQLiteStorage) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// LatestTransaction returns the most recent record, or nil when the history
// is empty.
func (s *SQLiteStorage) LatestTransaction(ctx context.Context) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY date DESC
		LIMIT 1
	`)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest transaction: %w", err)
	}
	return txn, nil
}

// SetTransactionCategory assigns a category to a stored record.
func (s *SQLiteStorage) SetTransactionCategory(ctx context.Context, txnID, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(txnID, "txnID"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ? WHERE id = ?`,
		categoryID, txnID)
	if err != nil {
		return fmt.Errorf("failed to set category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, txnID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var kind string
	if err := row.Scan(
		&txn.ID, &txn.Hash, &txn.Date, &kind, &txn.Counterparty,
		&txn.Amount, &txn.Fee, &txn.BalanceAfter, &txn.SourceText, &txn.CategoryID,
	); err != nil {
		return nil, err
	}
	txn.Kind = model.TransactionKind(kind)
	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
