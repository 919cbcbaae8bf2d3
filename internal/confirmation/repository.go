package confirmation

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type Repository interface {
	// Create inserts a pending confirmation. Returns ErrDuplicatePending
	// when the item already has one open; a partial unique index enforces
	// at most one pending row per (household, item).
	Create(ctx context.Context, c *model.PendingConfirmation) error

	GetByConfirmationID(ctx context.Context, confirmationID string) (*model.PendingConfirmation, error)

	// MarkResolvedTx flips a confirmation out of pending in a single
	// guarded statement. Zero rows affected means another responder won.
	MarkResolvedTx(ctx context.Context, tx sqlx.ExtContext, confirmationID, status string, actualRemaining *float64, resolvedAt time.Time) (int64, error)

	// ListPending returns open, unexpired confirmations oldest-first.
	ListPending(ctx context.Context, householdID int64) ([]model.PendingConfirmation, error)
	CountPending(ctx context.Context, householdID int64) (int, error)

	// ListPendingKeys fetches every open confirmation's (household, item)
	// key in one query so a scan can suppress duplicates without a
	// per-item lookup.
	ListPendingKeys(ctx context.Context) (map[dto.PendingKey]struct{}, error)
}
