package model

// VelocityStatus classifies the month-to-date spend relative to budget pace.
type VelocityStatus string

const (
	// VelocityOver means spending is ahead of the pro-rata budget pace.
	VelocityOver VelocityStatus = "over"
	// VelocityUnder means spending is behind the pro-rata budget pace.
	VelocityUnder VelocityStatus = "under"
	// VelocityOnTrack means spending is within the on-pace band.
	VelocityOnTrack VelocityStatus = "on-track"
)

// VelocityReport describes the current month's spending pace and the balance
// projection it implies. Derived data, recomputed on demand relative to "now".
type VelocityReport struct {
	Status              VelocityStatus
	MonthlyExpenses     float64
	DailyBurnRate       float64
	VelocityRatio       float64
	ProjectedEndBalance float64
	DaysInMonth         int
	DaysRemaining       int
}
