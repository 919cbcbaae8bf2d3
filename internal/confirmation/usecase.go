package confirmation

import (
	"context"

	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type UseCase interface {
	ListPending(ctx context.Context, userID, householdID int64) ([]model.PendingConfirmation, error)

	// CountPending serves the badge counter; the value may be briefly
	// stale when it comes from cache.
	CountPending(ctx context.Context, userID, householdID int64) (int, error)

	// Respond resolves a pending confirmation exactly once. A confirmed
	// response removes the inventory item, records the depletion, trains
	// the pattern, and adds the item to the shopping list atomically. A
	// denied response only flips the status.
	Respond(ctx context.Context, input *dto.RespondInput) (*dto.RespondResult, error)
}
