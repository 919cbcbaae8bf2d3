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

func (r *PGRepository) AddItemTx(ctx context.Context, tx sqlx.ExtContext, item *model.ShoppingListItem) error {
	query := `
        INSERT INTO shopping_list_items (
            item_id, household_id, user_id, name, quantity, unit, auto_added, created_at, modified_at
        )
        VALUES (
            :item_id, :household_id, :user_id, :name, :quantity, :unit, :auto_added, :created_at, :modified_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, tx, query, item)
	return err
}
