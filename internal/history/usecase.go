package history

import (
	"context"

	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type UseCase interface {
	// History returns depletion events newest-first plus aggregate
	// analytics over the returned page.
	History(ctx context.Context, filters *dto.EventFilters) ([]model.DepletionEvent, *dto.Analytics, error)

	// LogUsage records a partial consumption. Usage events are display
	// only and never feed the learner.
	LogUsage(ctx context.Context, input *dto.UsageInput) (*model.PartialUsageEvent, error)
	UsageHistory(ctx context.Context, filters *dto.UsageFilters) ([]model.PartialUsageEvent, *dto.UsageAnalytics, error)

	Stats(ctx context.Context, householdID int64) (*dto.Stats, error)
}
