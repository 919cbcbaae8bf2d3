package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/baseline"
	"github.com/pantrywise/consumption-service/internal/history"
	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern"
	patterndto "github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

// Patterns learned at this sample count or above count toward the
// household's learning progress.
const learnedSampleThreshold = 3

type historyUseCase struct {
	repo        history.Repository
	patternRepo pattern.Repository
	logger      logger.ZapLogger
}

func NewHistoryUseCase(repo history.Repository, patternRepo pattern.Repository, logger logger.ZapLogger) history.UseCase {
	return &historyUseCase{
		repo:        repo,
		patternRepo: patternRepo,
		logger:      logger,
	}
}

func (uc *historyUseCase) History(ctx context.Context, filters *dto.EventFilters) ([]model.DepletionEvent, *dto.Analytics, error) {
	if filters.ItemName != "" {
		filters.ItemName = baseline.NormalizeName(filters.ItemName)
	}

	events, err := uc.repo.FindEvents(ctx, filters)
	if err != nil {
		return nil, nil, err
	}

	analytics := &dto.Analytics{
		TotalEvents: len(events),
		ByMethod:    map[string]int{},
	}
	var sum int
	for i := range events {
		e := &events[i]
		analytics.ByMethod[e.Method]++
		sum += e.DaysLasted
		if analytics.MinDays == nil || e.DaysLasted < *analytics.MinDays {
			d := e.DaysLasted
			analytics.MinDays = &d
		}
		if analytics.MaxDays == nil || e.DaysLasted > *analytics.MaxDays {
			d := e.DaysLasted
			analytics.MaxDays = &d
		}
	}
	if len(events) > 0 {
		avg := float64(sum) / float64(len(events))
		analytics.AverageDays = &avg
	}

	return events, analytics, nil
}

func (uc *historyUseCase) LogUsage(ctx context.Context, input *dto.UsageInput) (*model.PartialUsageEvent, error) {
	if input.QuantityUsed <= 0 {
		return nil, history.ErrInvalidQuantity
	}
	if input.Method == "" {
		input.Method = model.MethodManual
	}
	if input.Method != model.MethodManual && input.Method != model.MethodRecipe {
		return nil, history.ErrInvalidMethod
	}

	now := time.Now().UTC()
	event := &model.PartialUsageEvent{
		UsageID:           uuid.NewString(),
		HouseholdID:       input.HouseholdID,
		ItemID:            input.ItemID,
		ItemName:          baseline.NormalizeName(input.ItemName),
		QuantityUsed:      input.QuantityUsed,
		QuantityRemaining: input.QuantityRemaining,
		Unit:              input.Unit,
		UsedAt:            now,
		Method:            input.Method,
		RecipeID:          input.RecipeID,
		CreatedAt:         now,
	}

	if err := uc.repo.CreateUsageEvent(ctx, event); err != nil {
		return nil, err
	}

	uc.logger.Info("usage event recorded",
		zap.Int64("household_id", event.HouseholdID),
		zap.String("item_name", event.ItemName),
		zap.Float64("quantity_used", event.QuantityUsed),
		zap.String("method", event.Method),
	)

	return event, nil
}

func (uc *historyUseCase) UsageHistory(ctx context.Context, filters *dto.UsageFilters) ([]model.PartialUsageEvent, *dto.UsageAnalytics, error) {
	if filters.ItemName != "" {
		filters.ItemName = baseline.NormalizeName(filters.ItemName)
	}

	events, err := uc.repo.FindUsageEvents(ctx, filters)
	if err != nil {
		return nil, nil, err
	}

	analytics := &dto.UsageAnalytics{
		TotalEvents: len(events),
		ByMethod:    map[string]int{},
	}
	for i := range events {
		analytics.ByMethod[events[i].Method]++
		analytics.TotalQuantityUsed += events[i].QuantityUsed
	}

	return events, analytics, nil
}

func (uc *historyUseCase) Stats(ctx context.Context, householdID int64) (*dto.Stats, error) {
	patterns, err := uc.patternRepo.FindAll(ctx, &patterndto.PatternFilters{HouseholdID: householdID})
	if err != nil {
		return nil, err
	}

	breakdown, err := uc.patternRepo.CountByConfidence(ctx, householdID)
	if err != nil {
		return nil, err
	}

	totalEvents, err := uc.repo.CountEvents(ctx, householdID)
	if err != nil {
		return nil, err
	}

	recent, err := uc.repo.FindEvents(ctx, &dto.EventFilters{HouseholdID: householdID, Days: 30})
	if err != nil {
		return nil, err
	}

	stats := &dto.Stats{
		TotalPatterns:       len(patterns),
		TotalEvents:         totalEvents,
		ConfidenceBreakdown: breakdown,
		RecentEvents30Days:  len(recent),
		MethodBreakdown:     map[string]int{},
		TopConsumedItems:    []dto.TopItem{},
	}

	counts := map[string]int{}
	for i := range recent {
		stats.MethodBreakdown[recent[i].Method]++
		counts[recent[i].ItemName]++
	}
	for item, n := range counts {
		stats.TopConsumedItems = append(stats.TopConsumedItems, dto.TopItem{Item: item, Count: n})
	}
	sort.Slice(stats.TopConsumedItems, func(i, j int) bool {
		a, b := stats.TopConsumedItems[i], stats.TopConsumedItems[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Item < b.Item
	})
	if len(stats.TopConsumedItems) > 10 {
		stats.TopConsumedItems = stats.TopConsumedItems[:10]
	}

	learned := 0
	observations := 0
	for i := range patterns {
		observations += patterns[i].SampleCount
		if patterns[i].SampleCount >= learnedSampleThreshold {
			learned++
		}
	}
	stats.LearningProgress = dto.Progress{
		PatternsLearned:   learned,
		TotalObservations: observations,
	}
	if len(patterns) > 0 {
		stats.LearningProgress.ConfidencePercentage = float64(learned) / float64(len(patterns)) * 100
	}

	return stats, nil
}
