package analytics

import (
	"testing"
	"time"

	"github.com/mkamau/pesaflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txnAt(counterparty string, kind model.TransactionKind, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:           counterparty + date.Format("20060102"),
		Counterparty: counterparty,
		Kind:         kind,
		Amount:       amount,
		Date:         date,
		SourceText:   "test",
	}
}

func TestDetectRecurringBillsMonthlyCadence(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	base := time.Date(2026, 6, 28, 12, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txnAt("KPLC PREPAID", model.KindPayBill, 2000, base),
		txnAt("KPLC PREPAID", model.KindPayBill, 2100, base.AddDate(0, 0, 30)),
		txnAt("KPLC PREPAID", model.KindPayBill, 1900, base.AddDate(0, 0, 61)),
	}

	bills := DetectRecurringBills(txns, now)
	require.Len(t, bills, 1)

	bill := bills[0]
	assert.Equal(t, model.CadenceMonthly, bill.Cadence)
	assert.Equal(t, base.AddDate(0, 0, 61), bill.LastObservedAt)
	assert.Equal(t, base.AddDate(0, 0, 91), bill.NextExpectedAt)
	assert.InDelta(t, 2000, bill.TypicalAmount, 0.001)
}

func TestDetectRecurringBillsCadenceThresholds(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		want    model.Cadence
		gapDays []int
	}{
		{name: "weekly", gapDays: []int{7, 7, 8}, want: model.CadenceWeekly},
		{name: "biweekly", gapDays: []int{14, 15}, want: model.CadenceBiweekly},
		{name: "monthly", gapDays: []int{30, 31}, want: model.CadenceMonthly},
		{name: "mean below ten is weekly", gapDays: []int{9, 9}, want: model.CadenceWeekly},
		{name: "mean below twenty is biweekly", gapDays: []int{10, 12}, want: model.CadenceBiweekly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := now.AddDate(0, 0, -1)
			for i := len(tt.gapDays) - 1; i >= 0; i-- {
				date = date.AddDate(0, 0, -tt.gapDays[i])
			}

			var txns []model.Transaction
			txns = append(txns, txnAt("BILLER", model.KindPayBill, 100, date))
			for _, gap := range tt.gapDays {
				date = date.AddDate(0, 0, gap)
				txns = append(txns, txnAt("BILLER", model.KindPayBill, 100, date))
			}

			bills := DetectRecurringBills(txns, now)
			require.Len(t, bills, 1)
			assert.Equal(t, tt.want, bills[0].Cadence)
		})
	}
}

func TestDetectRecurringBillsMinimumObservations(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txnAt("NETFLIX", model.KindPayBill, 1100, now.AddDate(0, 0, -15)),
	}

	assert.Empty(t, DetectRecurringBills(txns, now))
}

func TestDetectRecurringBillsExcludesReceives(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txnAt("EMPLOYER LTD", model.KindReceive, 50000, now.AddDate(0, 0, -45)),
		txnAt("EMPLOYER LTD", model.KindReceive, 50000, now.AddDate(0, 0, -15)),
	}

	assert.Empty(t, DetectRecurringBills(txns, now))
}

func TestDetectRecurringBillsSameDayRepeatsDiscarded(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	day := now.AddDate(0, 0, -10)

	txns := []model.Transaction{
		txnAt("DUKA", model.KindBuyGoods, 200, day),
		txnAt("DUKA", model.KindBuyGoods, 300, day.Add(2*time.Hour)),
	}

	assert.Empty(t, DetectRecurringBills(txns, now))
}

func TestDetectRecurringBillsForecastWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	t.Run("stale pattern excluded", func(t *testing.T) {
		// Last payment 45 days ago; next expected 15 days overdue.
		txns := []model.Transaction{
			txnAt("OLD GYM", model.KindPayBill, 3000, now.AddDate(0, 0, -75)),
			txnAt("OLD GYM", model.KindPayBill, 3000, now.AddDate(0, 0, -45)),
		}
		assert.Empty(t, DetectRecurringBills(txns, now))
	})

	t.Run("slightly overdue retained", func(t *testing.T) {
		txns := []model.Transaction{
			txnAt("WIFI", model.KindPayBill, 2500, now.AddDate(0, 0, -65)),
			txnAt("WIFI", model.KindPayBill, 2500, now.AddDate(0, 0, -35)),
		}
		bills := DetectRecurringBills(txns, now)
		require.Len(t, bills, 1)
		assert.Equal(t, now.AddDate(0, 0, -5), bills[0].NextExpectedAt)
	})

	t.Run("distant prediction excluded", func(t *testing.T) {
		// Observations in the future push the prediction past the window.
		txns := []model.Transaction{
			txnAt("PREPAID RENT", model.KindPayBill, 15000, now.AddDate(0, 0, 5)),
			txnAt("PREPAID RENT", model.KindPayBill, 15000, now.AddDate(0, 0, 35)),
		}
		assert.Empty(t, DetectRecurringBills(txns, now))
	})
}

func TestDetectRecurringBillsGroupingAndLabel(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	t.Run("case-insensitive grouping", func(t *testing.T) {
		txns := []model.Transaction{
			txnAt("NETFLIX", model.KindPayBill, 1100, now.AddDate(0, 0, -60)),
			txnAt("netflix", model.KindPayBill, 1100, now.AddDate(0, 0, -30)),
		}

		bills := DetectRecurringBills(txns, now)
		require.Len(t, bills, 1)
		assert.Equal(t, "Netflix", bills[0].CounterpartyLabel)
	})

	t.Run("label independent of source casing", func(t *testing.T) {
		// The latest record is all-caps; the label is still normalized.
		txns := []model.Transaction{
			txnAt("netflix", model.KindPayBill, 1100, now.AddDate(0, 0, -60)),
			txnAt("NETFLIX", model.KindPayBill, 1100, now.AddDate(0, 0, -30)),
		}

		bills := DetectRecurringBills(txns, now)
		require.Len(t, bills, 1)
		assert.Equal(t, "Netflix", bills[0].CounterpartyLabel)
	})

	t.Run("all-caps biller is display-cased", func(t *testing.T) {
		txns := []model.Transaction{
			txnAt("RENT", model.KindPayBill, 20000, now.AddDate(0, 0, -50)),
			txnAt("RENT", model.KindPayBill, 20000, now.AddDate(0, 0, -20)),
		}

		bills := DetectRecurringBills(txns, now)
		require.Len(t, bills, 1)
		assert.Equal(t, "Rent", bills[0].CounterpartyLabel)
	})
}

func TestDetectRecurringBillsOrderedByNextDue(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	txns := []model.Transaction{
		txnAt("RENT", model.KindPayBill, 20000, now.AddDate(0, 0, -50)),
		txnAt("RENT", model.KindPayBill, 20000, now.AddDate(0, 0, -20)),
		txnAt("GYM", model.KindPayBill, 3000, now.AddDate(0, 0, -35)),
		txnAt("GYM", model.KindPayBill, 3000, now.AddDate(0, 0, -5)),
	}

	bills := DetectRecurringBills(txns, now)
	require.Len(t, bills, 2)
	assert.Equal(t, "Rent", bills[0].CounterpartyLabel)
	assert.Equal(t, "Gym", bills[1].CounterpartyLabel)
	assert.True(t, bills[0].NextExpectedAt.Before(bills[1].NextExpectedAt))
}

func TestDetectRecurringBillsCalendarDayGaps(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	// 9 days and 2 hours of elapsed time, but 10 calendar days: a late-night
	// payment followed by an early-morning one must not shave a day off the
	// gap and misclassify the cadence as weekly.
	txns := []model.Transaction{
		txnAt("ZUKU FIBER", model.KindPayBill, 4100, time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC)),
		txnAt("ZUKU FIBER", model.KindPayBill, 4100, time.Date(2026, 8, 20, 1, 0, 0, 0, time.UTC)),
	}

	bills := DetectRecurringBills(txns, now)
	require.Len(t, bills, 1)
	assert.Equal(t, model.CadenceBiweekly, bills[0].Cadence)
}

func TestDetectRecurringBillsEmptyHistory(t *testing.T) {
	assert.Empty(t, DetectRecurringBills(nil, time.Now()))
}
