// Package analytics derives budget signals from accumulated transaction
// history. All functions are pure: they operate only on their arguments and
// an explicitly threaded "now", and recompute from scratch on every call.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/mkamau/pesaflow/internal/model"
)

// Cadence classification thresholds on the mean day gap between
// observations, and the retention window for predicted dates.
const (
	weeklyMeanGapMax   = 10.0
	biweeklyMeanGapMax = 20.0

	forecastWindowDays = 60
	overdueGraceDays   = 7
)

// minObservations is how many transactions a counterparty needs before a
// cadence can be inferred.
const minObservations = 2

// DetectRecurringBills scans the transaction history for counterparties that
// are paid on a regular cadence and forecasts their next occurrence.
//
// Only outflows are candidates. Grouping is exact case-insensitive name
// match; there is no alias resolution or confidence scoring. Forecasts more
// than 60 days out, or more than 7 days overdue, are suppressed as
// speculative or stale. Results are ordered by predicted date ascending.
func DetectRecurringBills(txns []model.Transaction, now time.Time) []model.RecurringBill {
	groups := make(map[string][]model.Transaction)
	for _, txn := range txns {
		if !txn.IsOutflow() {
			continue
		}
		key := strings.ToLower(txn.Counterparty)
		groups[key] = append(groups[key], txn)
	}

	var bills []model.RecurringBill
	for _, group := range groups {
		if bill, ok := forecastGroup(group, now); ok {
			bills = append(bills, bill)
		}
	}

	sort.Slice(bills, func(i, j int) bool {
		return bills[i].NextExpectedAt.Before(bills[j].NextExpectedAt)
	})
	return bills
}

// forecastGroup infers a cadence for one counterparty's transactions and
// predicts the next occurrence. Returns false when the group has too few
// observations, no positive day gaps, or a prediction outside the window.
func forecastGroup(group []model.Transaction, now time.Time) (model.RecurringBill, bool) {
	if len(group) < minObservations {
		return model.RecurringBill{}, false
	}

	sort.Slice(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})

	// Same-day repeats do not count as an interval sample.
	var gaps []float64
	for i := 1; i < len(group); i++ {
		days := daysBetween(group[i-1].Date, group[i].Date)
		if days > 0 {
			gaps = append(gaps, float64(days))
		}
	}
	if len(gaps) == 0 {
		return model.RecurringBill{}, false
	}

	cadence := classifyCadence(mean(gaps))

	var total float64
	for _, txn := range group {
		total += txn.Amount
	}

	last := group[len(group)-1]
	next := last.Date.AddDate(0, 0, cadence.StepDays())

	daysUntil := daysBetween(now, next)
	if daysUntil < -overdueGraceDays || daysUntil > forecastWindowDays {
		return model.RecurringBill{}, false
	}

	return model.RecurringBill{
		CounterpartyLabel: displayCase(last.Counterparty),
		TypicalAmount:     math.Round(total / float64(len(group))),
		Cadence:           cadence,
		LastObservedAt:    last.Date,
		NextExpectedAt:    next,
	}, true
}

func classifyCadence(meanGap float64) model.Cadence {
	switch {
	case meanGap < weeklyMeanGapMax:
		return model.CadenceWeekly
	case meanGap < biweeklyMeanGapMax:
		return model.CadenceBiweekly
	default:
		return model.CadenceMonthly
	}
}

// daysBetween counts calendar days. Both ends are normalized to midnight so
// clock times never shave a partial day off a gap or the forecast window.
func daysBetween(from, to time.Time) int {
	from = midnight(from)
	to = midnight(to)
	return int(to.Sub(from).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func mean(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// displayCase normalizes a counterparty label for presentation. Grouping is
// case-insensitive, so the label is derived from the lowercased name with
// the first letter capitalized; it never depends on which record's casing
// happened to be observed last.
func displayCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
