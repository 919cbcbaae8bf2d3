package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/baseline"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type patternUseCase struct {
	repo      pattern.Repository
	baselines *baseline.Cache
	logger    logger.ZapLogger
}

func NewPatternUseCase(repo pattern.Repository, baselines *baseline.Cache, log logger.ZapLogger) pattern.UseCase {
	return &patternUseCase{
		repo:      repo,
		baselines: baselines,
		logger:    log,
	}
}

func (uc *patternUseCase) PredictedDays(ctx context.Context, householdID int64, itemName string) (int, string, error) {
	name := baseline.NormalizeName(itemName)

	p, err := uc.repo.Find(ctx, householdID, name)
	if err != nil {
		return 0, "", err
	}
	if p != nil && p.SampleCount >= pattern.MinSamplesForPersonalization {
		uc.logger.Debug("using personalized prediction",
			zap.Int64("household_id", householdID),
			zap.String("item_name", name),
			zap.Float64("personalized_days", p.PersonalizedDays))
		return int(math.Round(p.PersonalizedDays)), pattern.PredictionPersonalized, nil
	}

	if entry, ok := uc.baselines.Lookup(name); ok {
		return entry.AvgDays, pattern.PredictionBaseline, nil
	}

	uc.logger.Debug("no baseline for item, using default",
		zap.String("item_name", name), zap.Int("default_days", baseline.DefaultDays))
	return baseline.DefaultDays, pattern.PredictionBaseline, nil
}

func (uc *patternUseCase) PredictedDaysForQuantity(ctx context.Context, householdID int64, itemName string, quantity float64, unit string) (int, string, error) {
	name := baseline.NormalizeName(itemName)

	p, err := uc.repo.Find(ctx, householdID, name)
	if err != nil {
		return 0, "", err
	}
	if p != nil && p.SampleCount >= pattern.MinSamplesForPersonalization &&
		p.ConsumptionRate != nil && *p.ConsumptionRate > 0 &&
		p.RateUnit != nil && *p.RateUnit == unit {
		days := int(math.Round(quantity / *p.ConsumptionRate))
		uc.logger.Debug("rate-based prediction",
			zap.Int64("household_id", householdID),
			zap.String("item_name", name),
			zap.Float64("rate", *p.ConsumptionRate),
			zap.Int("predicted_days", days))
		return days, pattern.PredictionPersonalized, nil
	}

	return uc.PredictedDays(ctx, householdID, itemName)
}

func (uc *patternUseCase) ApplyObservationTx(ctx context.Context, tx sqlx.ExtContext, obs *dto.Observation) (*model.Pattern, error) {
	name := baseline.NormalizeName(obs.ItemName)

	existing, err := uc.repo.FindForUpdateTx(ctx, tx, obs.HouseholdID, name)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		created := pattern.NewPattern(obs.HouseholdID, name, obs.DaysLasted, obs.Quantity, obs.Unit, obs.ObservedAt)
		inserted, err := uc.repo.CreateTx(ctx, tx, created)
		if err != nil {
			return nil, err
		}
		if inserted {
			uc.logger.Info("created consumption pattern",
				zap.Int64("household_id", obs.HouseholdID),
				zap.String("item_name", name),
				zap.Int("days_lasted", obs.DaysLasted))
			return created, nil
		}
		// Lost the insert race; the row exists now, lock it and update.
		existing, err = uc.repo.FindForUpdateTx(ctx, tx, obs.HouseholdID, name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("pattern vanished after insert conflict: household=%d item=%s", obs.HouseholdID, name)
		}
	}

	oldAvg := existing.PersonalizedDays
	pattern.Advance(existing, obs.DaysLasted, obs.Quantity, obs.Unit, obs.ObservedAt)
	if err := uc.repo.UpdateTx(ctx, tx, existing); err != nil {
		return nil, err
	}

	uc.logger.Info("updated consumption pattern",
		zap.Int64("household_id", obs.HouseholdID),
		zap.String("item_name", name),
		zap.Float64("old_avg", oldAvg),
		zap.Float64("new_avg", existing.PersonalizedDays),
		zap.Int("sample_count", existing.SampleCount),
		zap.String("confidence", existing.Confidence))
	return existing, nil
}

func (uc *patternUseCase) Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error) {
	return uc.repo.Find(ctx, householdID, baseline.NormalizeName(itemName))
}

func (uc *patternUseCase) ListPatterns(ctx context.Context, filters *dto.PatternFilters) ([]model.Pattern, error) {
	return uc.repo.FindAll(ctx, filters)
}
