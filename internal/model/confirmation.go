package model

import "time"

// Confirmation statuses. Pending is the only non-terminal state; expired
// rows keep status pending and are filtered out of active queries.
const (
	ConfirmationPending   = "pending"
	ConfirmationConfirmed = "confirmed"
	ConfirmationDenied    = "denied"
)

// PendingConfirmation is a time-boxed request asking a human to verify a
// predicted depletion before anything destructive happens.
type PendingConfirmation struct {
	ID                      int64      `db:"id" json:"id"`
	ConfirmationID          string     `db:"confirmation_id" json:"confirmation_id"` // UUID hex
	HouseholdID             int64      `db:"household_id" json:"household_id"`
	ItemID                  string     `db:"item_id" json:"item_id"`
	ItemName                string     `db:"item_name" json:"item_name"`
	Quantity                float64    `db:"quantity" json:"quantity"`
	Unit                    string     `db:"unit" json:"unit"`
	AddedAt                 time.Time  `db:"added_at" json:"added_at"`
	PredictedDepletionAt    time.Time  `db:"predicted_depletion_at" json:"predicted_depletion_at"`
	Status                  string     `db:"status" json:"status"`
	ExpiresAt               time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	ResolvedAt              *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	ActualQuantityRemaining *float64   `db:"actual_quantity_remaining" json:"actual_quantity_remaining,omitempty"`
}
