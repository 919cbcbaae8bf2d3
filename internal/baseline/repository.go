package baseline

import (
	"context"

	"github.com/pantrywise/consumption-service/internal/model"
)

type Repository interface {
	ListAll(ctx context.Context) ([]model.Baseline, error)
	BulkInsert(ctx context.Context, rows []model.Baseline) error
}
