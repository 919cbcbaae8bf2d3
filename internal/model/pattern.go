package model

import "time"

// Confidence tiers for a learned pattern, derived purely from sample count.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Pattern is the per-(household, item) learned consumption model. Created on
// the first confirmed depletion, refined by EMA on every one after.
type Pattern struct {
	ID               int64      `db:"id" json:"id"`
	HouseholdID      int64      `db:"household_id" json:"household_id"`
	ItemName         string     `db:"item_name" json:"item_name"`
	PersonalizedDays float64    `db:"personalized_days" json:"personalized_days"`
	SampleCount      int        `db:"sample_count" json:"sample_count"`
	ConsumptionRate  *float64   `db:"consumption_rate" json:"consumption_rate,omitempty"` // quantity/day
	RateUnit         *string    `db:"rate_unit" json:"rate_unit,omitempty"`
	Confidence       string     `db:"confidence" json:"confidence"`
	LearningRate     float64    `db:"learning_rate" json:"learning_rate"`
	LastObservedAt   *time.Time `db:"last_observed_at" json:"last_observed_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
