package inventory

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
)

// Repository is the inventory-store collaborator. The prediction core only
// ever reads items and, on a confirmed depletion, deletes exactly one.
type Repository interface {
	ListItems(ctx context.Context, householdID int64) ([]model.InventoryItem, error)

	// DeleteItemTx removes an item inside the caller's transaction and
	// reports how many rows went away, so the resolve path can abort when
	// the item is already gone.
	DeleteItemTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemID string) (int64, error)
}
