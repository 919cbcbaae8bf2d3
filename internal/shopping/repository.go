package shopping

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
)

// Repository is the shopping-list collaborator. The confirmation manager
// writes a restock suggestion inside the same transaction as the depletion.
type Repository interface {
	AddItemTx(ctx context.Context, tx sqlx.ExtContext, item *model.ShoppingListItem) error
}
