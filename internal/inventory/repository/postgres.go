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

func (r *PGRepository) ListItems(ctx context.Context, householdID int64) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	query := `SELECT * FROM inventory_items WHERE household_id = $1`
	err := r.DB.SelectContext(ctx, &items, query, householdID)
	return items, err
}

func (r *PGRepository) DeleteItemTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemID string) (int64, error) {
	query := `DELETE FROM inventory_items WHERE household_id = $1 AND item_id = $2`
	res, err := tx.ExecContext(ctx, query, householdID, itemID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
