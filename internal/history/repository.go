package history

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type Repository interface {
	// CreateEventTx appends a depletion event inside the caller's
	// transaction; the log is append-only.
	CreateEventTx(ctx context.Context, tx sqlx.ExtContext, event *model.DepletionEvent) error
	FindEvents(ctx context.Context, filters *dto.EventFilters) ([]model.DepletionEvent, error)
	CountEvents(ctx context.Context, householdID int64) (int, error)

	CreateUsageEvent(ctx context.Context, event *model.PartialUsageEvent) error
	FindUsageEvents(ctx context.Context, filters *dto.UsageFilters) ([]model.PartialUsageEvent, error)
}
