package analytics

import (
	"testing"
	"time"

	"github.com/mkamau/pesaflow/internal/model"
	"github.com/stretchr/testify/assert"
)

// April 10th: 10 elapsed days of a 30-day month.
var velocityNow = time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)

func spend(amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:           date.Format("20060102150405"),
		Kind:         model.KindPayBill,
		Counterparty: "BILLER",
		Amount:       amount,
		Date:         date,
		SourceText:   "test",
	}
}

func TestCalculateSpendingVelocityOnTrack(t *testing.T) {
	txns := []model.Transaction{
		spend(1000, velocityNow.AddDate(0, 0, -8)),
		spend(2000, velocityNow.AddDate(0, 0, -3)),
	}

	report := CalculateSpendingVelocity(txns, 9000, 10000, velocityNow)

	assert.Equal(t, 30, report.DaysInMonth)
	assert.Equal(t, 20, report.DaysRemaining)
	assert.InDelta(t, 3000, report.MonthlyExpenses, 0.001)
	assert.InDelta(t, 300, report.DailyBurnRate, 0.001)
	assert.InDelta(t, 1.0, report.VelocityRatio, 0.001)
	assert.Equal(t, model.VelocityOnTrack, report.Status)

	// Projected total 9000; remaining projected spend 6000.
	assert.InDelta(t, 4000, report.ProjectedEndBalance, 0.001)
}

func TestCalculateSpendingVelocityStatusThresholds(t *testing.T) {
	tests := []struct {
		name     string
		want     model.VelocityStatus
		expenses float64
	}{
		{name: "well over pace", expenses: 4000, want: model.VelocityOver},
		{name: "well under pace", expenses: 2000, want: model.VelocityUnder},
		{name: "upper boundary is on-track", expenses: 3450, want: model.VelocityOnTrack},
		{name: "lower boundary is on-track", expenses: 2550, want: model.VelocityOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := []model.Transaction{spend(tt.expenses, velocityNow.AddDate(0, 0, -2))}
			report := CalculateSpendingVelocity(txns, 9000, 5000, velocityNow)
			assert.Equal(t, tt.want, report.Status)
		})
	}
}

func TestCalculateSpendingVelocityIgnoresOtherMonths(t *testing.T) {
	txns := []model.Transaction{
		spend(3000, velocityNow.AddDate(0, 0, -5)),
		spend(9999, velocityNow.AddDate(0, -1, 0)), // previous month
		spend(9999, velocityNow.AddDate(-1, 0, 0)), // previous year, same month
		spend(9999, velocityNow.AddDate(0, 1, 0)),  // next month
	}

	report := CalculateSpendingVelocity(txns, 9000, 10000, velocityNow)
	assert.InDelta(t, 3000, report.MonthlyExpenses, 0.001)
}

func TestCalculateSpendingVelocityIgnoresReceives(t *testing.T) {
	txns := []model.Transaction{
		spend(3000, velocityNow.AddDate(0, 0, -5)),
		{
			ID:           "RCV1",
			Kind:         model.KindReceive,
			Counterparty: "EMPLOYER",
			Amount:       50000,
			Date:         velocityNow.AddDate(0, 0, -4),
			SourceText:   "test",
		},
	}

	report := CalculateSpendingVelocity(txns, 9000, 10000, velocityNow)
	assert.InDelta(t, 3000, report.MonthlyExpenses, 0.001)
}

func TestCalculateSpendingVelocityZeroBudget(t *testing.T) {
	t.Run("spend with no budget is over", func(t *testing.T) {
		txns := []model.Transaction{spend(500, velocityNow.AddDate(0, 0, -1))}
		report := CalculateSpendingVelocity(txns, 0, 1000, velocityNow)
		assert.Equal(t, model.VelocityOver, report.Status)
		assert.Zero(t, report.VelocityRatio)
	})

	t.Run("no spend and no budget is on-track", func(t *testing.T) {
		report := CalculateSpendingVelocity(nil, 0, 1000, velocityNow)
		assert.Equal(t, model.VelocityOnTrack, report.Status)
		assert.Zero(t, report.VelocityRatio)
	})
}

func TestCalculateSpendingVelocityEmptyHistory(t *testing.T) {
	report := CalculateSpendingVelocity(nil, 9000, 7500, velocityNow)

	assert.Zero(t, report.MonthlyExpenses)
	assert.Zero(t, report.DailyBurnRate)
	assert.Zero(t, report.VelocityRatio)
	assert.Equal(t, model.VelocityUnder, report.Status)
	assert.InDelta(t, 7500, report.ProjectedEndBalance, 0.001)
}
