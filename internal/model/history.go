package model

import "time"

// Depletion methods. Only confirmed depletions feed the learner.
const (
	MethodConfirmed = "confirmed"
	MethodManual    = "manual"
	MethodRecipe    = "recipe"
)

// DepletionEvent is the append-only record of a fully consumed item. It is
// the ground truth behind every pattern update.
type DepletionEvent struct {
	ID              int64     `db:"id" json:"id"`
	HouseholdID     int64     `db:"household_id" json:"household_id"`
	ItemID          *string   `db:"item_id" json:"item_id,omitempty"`
	ItemName        string    `db:"item_name" json:"item_name"`
	Quantity        float64   `db:"quantity" json:"quantity"`
	Unit            string    `db:"unit" json:"unit"`
	AddedAt         time.Time `db:"added_at" json:"added_at"`
	DepletedAt      time.Time `db:"depleted_at" json:"depleted_at"`
	DaysLasted      int       `db:"days_lasted" json:"days_lasted"`
	ConsumptionRate *float64  `db:"consumption_rate" json:"consumption_rate,omitempty"`
	Method          string    `db:"method" json:"method"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// PartialUsageEvent records quantity consumed without full depletion, e.g. a
// recipe using half a container. Display only; never trains the learner.
type PartialUsageEvent struct {
	ID                int64     `db:"id" json:"id"`
	UsageID           string    `db:"usage_id" json:"usage_id"` // UUID hex
	HouseholdID       int64     `db:"household_id" json:"household_id"`
	ItemID            *string   `db:"item_id" json:"item_id,omitempty"`
	ItemName          string    `db:"item_name" json:"item_name"`
	QuantityUsed      float64   `db:"quantity_used" json:"quantity_used"`
	QuantityRemaining float64   `db:"quantity_remaining" json:"quantity_remaining"`
	Unit              string    `db:"unit" json:"unit"`
	UsedAt            time.Time `db:"used_at" json:"used_at"`
	Method            string    `db:"method" json:"method"` // 'recipe', 'manual'
	RecipeID          *int64    `db:"recipe_id" json:"recipe_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
