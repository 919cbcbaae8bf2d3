package pattern

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
)

// Prediction sources reported back to callers.
const (
	PredictionPersonalized = "personalized"
	PredictionBaseline     = "baseline"
)

type UseCase interface {
	// PredictedDays estimates how many days the item lasts in this
	// household, falling back from learned pattern to baseline to default.
	PredictedDays(ctx context.Context, householdID int64, itemName string) (int, string, error)

	// PredictedDaysForQuantity refines the estimate using the learned
	// consumption rate when one exists for the requested unit.
	PredictedDaysForQuantity(ctx context.Context, householdID int64, itemName string, quantity float64, unit string) (int, string, error)

	// ApplyObservationTx feeds one confirmed depletion to the learner
	// inside the caller's transaction. Sample count always increases by 1.
	ApplyObservationTx(ctx context.Context, tx sqlx.ExtContext, obs *dto.Observation) (*model.Pattern, error)

	Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error)
	ListPatterns(ctx context.Context, filters *dto.PatternFilters) ([]model.Pattern, error)
}
