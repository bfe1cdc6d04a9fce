package model

import "time"

// IngestRun records one batch of messages fed through the parser, for
// auditing how much of an import was recognized.
type IngestRun struct {
	StartedAt   time.Time
	CompletedAt time.Time
	ID          string // uuid
	Source      string // file path or "stdin"
	Total       int
	Parsed      int
	Skipped     int
}
