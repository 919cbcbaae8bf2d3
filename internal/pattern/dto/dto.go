package dto

import "time"

type PatternFilters struct {
	HouseholdID int64
	SortBy      string // item_name, personalized_days, sample_count, confidence
	Order       string // asc, desc
}

// Observation is one confirmed depletion fed to the learner.
type Observation struct {
	HouseholdID int64
	ItemName    string
	DaysLasted  int
	Quantity    *float64
	Unit        *string
	ObservedAt  time.Time
}
