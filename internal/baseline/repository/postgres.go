package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListAll(ctx context.Context) ([]model.Baseline, error) {
	var rows []model.Baseline
	query := `SELECT * FROM consumption_baselines ORDER BY item_name`
	err := r.DB.SelectContext(ctx, &rows, query)
	return rows, err
}

func (r *PGRepository) BulkInsert(ctx context.Context, rows []model.Baseline) error {
	if len(rows) == 0 {
		return nil
	}
	query := `
        INSERT INTO consumption_baselines (item_name, avg_consumption_days, category)
        VALUES (:item_name, :avg_consumption_days, :category)
        ON CONFLICT (item_name) DO UPDATE SET
            avg_consumption_days = EXCLUDED.avg_consumption_days,
            category = EXCLUDED.category
    `
	_, err := r.DB.NamedExecContext(ctx, query, rows)
	return err
}
