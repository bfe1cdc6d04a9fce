// Package storage provides the SQLite persistence layer for transaction
// records, categories, and ingest audit logs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkamau/pesaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidDateRange   = errors.New("start date must be before end date")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(txns []model.Transaction) error {
	if txns == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(txns) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidTransaction, i, err)
		}
	}
	return nil
}
