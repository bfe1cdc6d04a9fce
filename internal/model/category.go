package model

import "time"

// Category represents a spending category assigned to transactions by the
// user. The parser never assigns categories; they are caller-managed.
type Category struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
}
