package household

import (
	"context"

	"github.com/pantrywise/consumption-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.Household, error)
	IsMember(ctx context.Context, householdID, userID int64) (bool, error)

	// ListIDsWithItems returns only households that currently hold at least
	// one inventory item, so scans skip empty households entirely.
	ListIDsWithItems(ctx context.Context) ([]int64, error)
}
