package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Household, error) {
	var hh model.Household
	query := `SELECT * FROM households WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &hh, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &hh, nil
}

func (r *PGRepository) IsMember(ctx context.Context, householdID, userID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM household_members WHERE household_id = $1 AND user_id = $2`
	if err := r.DB.GetContext(ctx, &count, query, householdID, userID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) ListIDsWithItems(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := `SELECT DISTINCT household_id FROM inventory_items ORDER BY household_id`
	err := r.DB.SelectContext(ctx, &ids, query)
	return ids, err
}
