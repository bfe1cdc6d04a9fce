package model

import "time"

// Cadence is the inferred recurrence period of a recurring bill.
type Cadence string

const (
	// CadenceWeekly means the bill recurs roughly every 7 days.
	CadenceWeekly Cadence = "weekly"
	// CadenceBiweekly means the bill recurs roughly every 14 days.
	CadenceBiweekly Cadence = "biweekly"
	// CadenceMonthly means the bill recurs roughly every 30 days.
	CadenceMonthly Cadence = "monthly"
)

// StepDays returns the day step used to project the next occurrence.
func (c Cadence) StepDays() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	default:
		return 30
	}
}

// RecurringBill is a forecast for a detected recurring payment. It is derived
// data, recomputed from the transaction history on every detection run and
// never persisted.
type RecurringBill struct {
	LastObservedAt    time.Time
	NextExpectedAt    time.Time
	CounterpartyLabel string
	Cadence           Cadence
	TypicalAmount     float64
}
