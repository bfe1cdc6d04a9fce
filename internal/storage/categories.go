package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mkamau/pesaflow/internal/common"
	"github.com/mkamau/pesaflow/internal/model"
)

// CreateCategory creates a new spending category with a generated id.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	cat := model.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description) VALUES (?, ?, ?)`,
		cat.ID, cat.Name, cat.Description)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, cat.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &cat, nil
}

// ListCategories returns all categories ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return cats, nil
}
