package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error) {
	var p model.Pattern
	query := `SELECT * FROM consumption_patterns WHERE household_id = $1 AND item_name = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, householdID, itemName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.PatternFilters) ([]model.Pattern, error) {
	var patterns []model.Pattern

	// Sort column comes from a whitelist, never from raw input.
	orderColumn := "item_name"
	switch f.SortBy {
	case "personalized_days", "sample_count", "confidence":
		orderColumn = f.SortBy
	}
	direction := "ASC"
	if f.Order == "desc" {
		direction = "DESC"
	}

	query := `SELECT * FROM consumption_patterns WHERE household_id = $1 ORDER BY ` + orderColumn + ` ` + direction
	err := r.DB.SelectContext(ctx, &patterns, query, f.HouseholdID)
	return patterns, err
}

func (r *PGRepository) CountByConfidence(ctx context.Context, householdID int64) (map[string]int, error) {
	rows := []struct {
		Confidence string `db:"confidence"`
		Count      int    `db:"count"`
	}{}
	query := `SELECT confidence, count(*) AS count FROM consumption_patterns WHERE household_id = $1 GROUP BY confidence`
	if err := r.DB.SelectContext(ctx, &rows, query, householdID); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.Confidence] = row.Count
	}
	return counts, nil
}

func (r *PGRepository) FindForUpdateTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemName string) (*model.Pattern, error) {
	var p model.Pattern
	query := `SELECT * FROM consumption_patterns WHERE household_id = $1 AND item_name = $2 FOR UPDATE`
	err := sqlx.GetContext(ctx, tx, &p, query, householdID, itemName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) CreateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) (bool, error) {
	query := `
        INSERT INTO consumption_patterns (
            household_id, item_name, personalized_days, sample_count,
            consumption_rate, rate_unit, confidence, learning_rate,
            last_observed_at, created_at, updated_at
        )
        VALUES (
            :household_id, :item_name, :personalized_days, :sample_count,
            :consumption_rate, :rate_unit, :confidence, :learning_rate,
            :last_observed_at, :created_at, :updated_at
        )
        ON CONFLICT (household_id, item_name) DO NOTHING
    `
	res, err := sqlx.NamedExecContext(ctx, tx, query, p)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PGRepository) UpdateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) error {
	query := `
        UPDATE consumption_patterns SET
            personalized_days = :personalized_days,
            sample_count = :sample_count,
            consumption_rate = :consumption_rate,
            rate_unit = :rate_unit,
            confidence = :confidence,
            learning_rate = :learning_rate,
            last_observed_at = :last_observed_at,
            updated_at = :updated_at
        WHERE household_id = :household_id AND item_name = :item_name
    `
	_, err := sqlx.NamedExecContext(ctx, tx, query, p)
	return err
}
