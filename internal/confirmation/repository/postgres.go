package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/confirmation"
	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.PendingConfirmation) error {
	query := `
        INSERT INTO pending_confirmations (
            confirmation_id, household_id, item_id, item_name, quantity, unit,
            added_at, predicted_depletion_at, status, expires_at, created_at
        )
        VALUES (
            :confirmation_id, :household_id, :item_id, :item_name, :quantity, :unit,
            :added_at, :predicted_depletion_at, :status, :expires_at, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return confirmation.ErrDuplicatePending
		}
		return err
	}
	return nil
}

func (r *PGRepository) GetByConfirmationID(ctx context.Context, confirmationID string) (*model.PendingConfirmation, error) {
	var c model.PendingConfirmation
	query := `SELECT * FROM pending_confirmations WHERE confirmation_id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, confirmationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) MarkResolvedTx(ctx context.Context, tx sqlx.ExtContext, confirmationID, status string, actualRemaining *float64, resolvedAt time.Time) (int64, error) {
	// The status guard makes resolution first-responder-wins even under
	// concurrent requests.
	query := `
        UPDATE pending_confirmations SET
            status = $1,
            actual_quantity_remaining = $2,
            resolved_at = $3
        WHERE confirmation_id = $4 AND status = $5
    `
	res, err := tx.ExecContext(ctx, query, status, actualRemaining, resolvedAt, confirmationID, model.ConfirmationPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) ListPending(ctx context.Context, householdID int64) ([]model.PendingConfirmation, error) {
	var out []model.PendingConfirmation
	query := `
        SELECT * FROM pending_confirmations
        WHERE household_id = $1 AND status = $2 AND expires_at > $3
        ORDER BY created_at ASC
    `
	err := r.DB.SelectContext(ctx, &out, query, householdID, model.ConfirmationPending, time.Now().UTC())
	return out, err
}

func (r *PGRepository) CountPending(ctx context.Context, householdID int64) (int, error) {
	var count int
	query := `
        SELECT count(*) FROM pending_confirmations
        WHERE household_id = $1 AND status = $2 AND expires_at > $3
    `
	err := r.DB.GetContext(ctx, &count, query, householdID, model.ConfirmationPending, time.Now().UTC())
	return count, err
}

func (r *PGRepository) ListPendingKeys(ctx context.Context) (map[dto.PendingKey]struct{}, error) {
	rows := []struct {
		HouseholdID int64  `db:"household_id"`
		ItemID      string `db:"item_id"`
	}{}
	query := `SELECT household_id, item_id FROM pending_confirmations WHERE status = $1`
	if err := r.DB.SelectContext(ctx, &rows, query, model.ConfirmationPending); err != nil {
		return nil, err
	}
	keys := make(map[dto.PendingKey]struct{}, len(rows))
	for _, row := range rows {
		keys[dto.PendingKey{HouseholdID: row.HouseholdID, ItemID: row.ItemID}] = struct{}{}
	}
	return keys, nil
}
