package model

import "time"

// ShoppingListItem is a restock suggestion. Confirmed depletions auto-add
// one so the item shows up on the household's list instead of vanishing.
type ShoppingListItem struct {
	ID          int64     `db:"id" json:"id"`
	ItemID      string    `db:"item_id" json:"item_id"` // UUID hex
	HouseholdID int64     `db:"household_id" json:"household_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	Unit        string    `db:"unit" json:"unit"`
	AutoAdded   bool      `db:"auto_added" json:"auto_added"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ModifiedAt  time.Time `db:"modified_at" json:"modified_at"`
}
