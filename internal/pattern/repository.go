package pattern

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
)

type Repository interface {
	Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error)
	FindAll(ctx context.Context, filters *dto.PatternFilters) ([]model.Pattern, error)
	CountByConfidence(ctx context.Context, householdID int64) (map[string]int, error)

	// FindForUpdateTx row-locks the pattern so concurrent confirmed
	// depletions of the same item serialize instead of losing an update.
	FindForUpdateTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemName string) (*model.Pattern, error)

	// CreateTx inserts a first-observation pattern. Returns false when a
	// concurrent insert won the (household_id, item_name) unique index.
	CreateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) (bool, error)
	UpdateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) error
}
