package model

import "time"

// InventoryItem is one physical instance of an item in a household's
// inventory. Multiple rows may share a name; depletion checks treat them
// as a FIFO queue ordered by AddedAt.
type InventoryItem struct {
	ID          int64      `db:"id" json:"id"`
	HouseholdID int64      `db:"household_id" json:"household_id"`
	ItemID      string     `db:"item_id" json:"item_id"` // UUID hex
	Name        string     `db:"name" json:"name"`
	Quantity    float64    `db:"quantity" json:"quantity"`
	Unit        string     `db:"unit" json:"unit"`
	StorageArea string     `db:"storage_area" json:"storage_area"` // pantry, fridge, freezer
	AddedAt     *time.Time `db:"added_at" json:"added_at"`
}
