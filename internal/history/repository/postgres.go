package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateEventTx(ctx context.Context, tx sqlx.ExtContext, event *model.DepletionEvent) error {
	query := `
        INSERT INTO depletion_events (
            household_id, item_id, item_name, quantity, unit,
            added_at, depleted_at, days_lasted, consumption_rate, method, created_at
        )
        VALUES (
            :household_id, :item_id, :item_name, :quantity, :unit,
            :added_at, :depleted_at, :days_lasted, :consumption_rate, :method, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, tx, query, event)
	return err
}

func (r *PGRepository) FindEvents(ctx context.Context, f *dto.EventFilters) ([]model.DepletionEvent, error) {
	var events []model.DepletionEvent

	conditions := []string{"household_id = :household_id"}
	args := map[string]interface{}{"household_id": f.HouseholdID}

	if f.ItemName != "" {
		conditions = append(conditions, "item_name = :item_name")
		args["item_name"] = f.ItemName
	}
	if f.Method != "" {
		conditions = append(conditions, "method = :method")
		args["method"] = f.Method
	}
	if f.Days > 0 {
		conditions = append(conditions, "depleted_at >= :cutoff")
		args["cutoff"] = time.Now().UTC().AddDate(0, 0, -f.Days)
	}

	query := "SELECT * FROM depletion_events WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY depleted_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &events, args)
	return events, err
}

func (r *PGRepository) CountEvents(ctx context.Context, householdID int64) (int, error) {
	var count int
	query := `SELECT count(*) FROM depletion_events WHERE household_id = $1`
	err := r.DB.GetContext(ctx, &count, query, householdID)
	return count, err
}

func (r *PGRepository) CreateUsageEvent(ctx context.Context, event *model.PartialUsageEvent) error {
	query := `
        INSERT INTO partial_usage_events (
            usage_id, household_id, item_id, item_name, quantity_used,
            quantity_remaining, unit, used_at, method, recipe_id, created_at
        )
        VALUES (
            :usage_id, :household_id, :item_id, :item_name, :quantity_used,
            :quantity_remaining, :unit, :used_at, :method, :recipe_id, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, event)
	return err
}

func (r *PGRepository) FindUsageEvents(ctx context.Context, f *dto.UsageFilters) ([]model.PartialUsageEvent, error) {
	var events []model.PartialUsageEvent

	conditions := []string{"household_id = :household_id"}
	args := map[string]interface{}{"household_id": f.HouseholdID}

	if f.ItemName != "" {
		conditions = append(conditions, "item_name = :item_name")
		args["item_name"] = f.ItemName
	}
	if f.Days > 0 {
		conditions = append(conditions, "used_at >= :cutoff")
		args["cutoff"] = time.Now().UTC().AddDate(0, 0, -f.Days)
	}

	query := "SELECT * FROM partial_usage_events WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY used_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &events, args)
	return events, err
}
