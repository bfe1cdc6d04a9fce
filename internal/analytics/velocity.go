package analytics

import (
	"time"

	"github.com/mkamau/pesaflow/internal/model"
)

// Velocity ratio thresholds for the pace classification. The boundary values
// themselves classify as on-track.
const (
	overPaceRatio  = 1.15
	underPaceRatio = 0.85
)

// CalculateSpendingVelocity measures the current month's outflow against a
// linear pro-rata budget expectation and projects the end-of-month balance.
//
// With a zero budget there is no meaningful pace to compare against: the
// ratio is reported as 0 and the status is over whenever anything was spent,
// on-track otherwise.
func CalculateSpendingVelocity(txns []model.Transaction, monthlyBudget, currentBalance float64, now time.Time) model.VelocityReport {
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	dayOfMonth := now.Day()

	var monthlyExpenses float64
	for _, txn := range txns {
		if !txn.IsOutflow() {
			continue
		}
		if txn.Date.Month() == now.Month() && txn.Date.Year() == now.Year() {
			monthlyExpenses += txn.Amount
		}
	}

	dailyBurnRate := monthlyExpenses / float64(dayOfMonth)
	projectedTotal := dailyBurnRate * float64(daysInMonth)
	projectedEndBalance := currentBalance - (projectedTotal - monthlyExpenses)

	expectedSpendToDate := monthlyBudget / float64(daysInMonth) * float64(dayOfMonth)

	var ratio float64
	var status model.VelocityStatus
	switch {
	case expectedSpendToDate == 0:
		if monthlyExpenses > 0 {
			status = model.VelocityOver
		} else {
			status = model.VelocityOnTrack
		}
	default:
		ratio = monthlyExpenses / expectedSpendToDate
		switch {
		case ratio > overPaceRatio:
			status = model.VelocityOver
		case ratio < underPaceRatio:
			status = model.VelocityUnder
		default:
			status = model.VelocityOnTrack
		}
	}

	return model.VelocityReport{
		Status:              status,
		MonthlyExpenses:     monthlyExpenses,
		DailyBurnRate:       dailyBurnRate,
		VelocityRatio:       ratio,
		ProjectedEndBalance: projectedEndBalance,
		DaysInMonth:         daysInMonth,
		DaysRemaining:       daysInMonth - dayOfMonth,
	}
}
