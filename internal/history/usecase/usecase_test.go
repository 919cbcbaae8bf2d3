package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/history"
	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/model"
	patterndto "github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type fakeHistoryRepo struct {
	events []model.DepletionEvent
	usage  []model.PartialUsageEvent
	total  int
}

func (f *fakeHistoryRepo) CreateEventTx(ctx context.Context, tx sqlx.ExtContext, event *model.DepletionEvent) error {
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeHistoryRepo) FindEvents(ctx context.Context, filters *dto.EventFilters) ([]model.DepletionEvent, error) {
	return f.events, nil
}

func (f *fakeHistoryRepo) CountEvents(ctx context.Context, householdID int64) (int, error) {
	return f.total, nil
}

func (f *fakeHistoryRepo) CreateUsageEvent(ctx context.Context, event *model.PartialUsageEvent) error {
	f.usage = append(f.usage, *event)
	return nil
}

func (f *fakeHistoryRepo) FindUsageEvents(ctx context.Context, filters *dto.UsageFilters) ([]model.PartialUsageEvent, error) {
	return f.usage, nil
}

type fakePatternRepo struct {
	patterns   []model.Pattern
	confidence map[string]int
}

func (f *fakePatternRepo) Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) FindAll(ctx context.Context, filters *patterndto.PatternFilters) ([]model.Pattern, error) {
	return f.patterns, nil
}

func (f *fakePatternRepo) CountByConfidence(ctx context.Context, householdID int64) (map[string]int, error) {
	return f.confidence, nil
}

func (f *fakePatternRepo) FindForUpdateTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemName string) (*model.Pattern, error) {
	return nil, nil
}

func (f *fakePatternRepo) CreateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) (bool, error) {
	return true, nil
}

func (f *fakePatternRepo) UpdateTx(ctx context.Context, tx sqlx.ExtContext, p *model.Pattern) error {
	return nil
}

func event(name, method string, days int) model.DepletionEvent {
	return model.DepletionEvent{
		HouseholdID: 1,
		ItemName:    name,
		Quantity:    1,
		Unit:        "unit",
		DaysLasted:  days,
		Method:      method,
		DepletedAt:  time.Now().UTC(),
	}
}

func TestHistoryAnalytics(t *testing.T) {
	repo := &fakeHistoryRepo{events: []model.DepletionEvent{
		event("milk", model.MethodConfirmed, 4),
		event("milk", model.MethodConfirmed, 8),
		event("bread", model.MethodManual, 6),
	}}
	uc := NewHistoryUseCase(repo, &fakePatternRepo{}, logger.NewNop())

	events, analytics, err := uc.History(context.Background(), &dto.EventFilters{HouseholdID: 1})
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if analytics.TotalEvents != 3 {
		t.Errorf("total = %d, want 3", analytics.TotalEvents)
	}
	if analytics.ByMethod[model.MethodConfirmed] != 2 || analytics.ByMethod[model.MethodManual] != 1 {
		t.Errorf("by_method = %v", analytics.ByMethod)
	}
	if analytics.AverageDays == nil || *analytics.AverageDays != 6 {
		t.Errorf("avg = %v, want 6", analytics.AverageDays)
	}
	if analytics.MinDays == nil || *analytics.MinDays != 4 {
		t.Errorf("min = %v, want 4", analytics.MinDays)
	}
	if analytics.MaxDays == nil || *analytics.MaxDays != 8 {
		t.Errorf("max = %v, want 8", analytics.MaxDays)
	}
}

func TestHistoryEmptyAnalytics(t *testing.T) {
	uc := NewHistoryUseCase(&fakeHistoryRepo{}, &fakePatternRepo{}, logger.NewNop())

	_, analytics, err := uc.History(context.Background(), &dto.EventFilters{HouseholdID: 1})
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if analytics.TotalEvents != 0 || analytics.AverageDays != nil || analytics.MinDays != nil {
		t.Errorf("analytics = %+v, want empty", analytics)
	}
}

func TestLogUsage(t *testing.T) {
	repo := &fakeHistoryRepo{}
	uc := NewHistoryUseCase(repo, &fakePatternRepo{}, logger.NewNop())

	recorded, err := uc.LogUsage(context.Background(), &dto.UsageInput{
		HouseholdID:       1,
		ItemName:          " Flour ",
		QuantityUsed:      0.5,
		QuantityRemaining: 1.5,
		Unit:              "kg",
	})
	if err != nil {
		t.Fatalf("LogUsage: %v", err)
	}

	if recorded.ItemName != "flour" {
		t.Errorf("item name = %q, want normalized flour", recorded.ItemName)
	}
	if recorded.Method != model.MethodManual {
		t.Errorf("method = %s, want default manual", recorded.Method)
	}
	if recorded.UsageID == "" {
		t.Error("usage id not assigned")
	}
	if len(repo.usage) != 1 {
		t.Errorf("persisted usage events = %d, want 1", len(repo.usage))
	}
}

func TestLogUsageValidation(t *testing.T) {
	uc := NewHistoryUseCase(&fakeHistoryRepo{}, &fakePatternRepo{}, logger.NewNop())

	_, err := uc.LogUsage(context.Background(), &dto.UsageInput{HouseholdID: 1, ItemName: "flour", QuantityUsed: 0})
	if !errors.Is(err, history.ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}

	_, err = uc.LogUsage(context.Background(), &dto.UsageInput{
		HouseholdID: 1, ItemName: "flour", QuantityUsed: 1, Method: "osmosis",
	})
	if !errors.Is(err, history.ErrInvalidMethod) {
		t.Errorf("err = %v, want ErrInvalidMethod", err)
	}
}

func TestStats(t *testing.T) {
	repo := &fakeHistoryRepo{
		total: 12,
		events: []model.DepletionEvent{
			event("milk", model.MethodConfirmed, 4),
			event("milk", model.MethodConfirmed, 5),
			event("milk", model.MethodManual, 6),
			event("bread", model.MethodConfirmed, 5),
		},
	}
	patternRepo := &fakePatternRepo{
		patterns: []model.Pattern{
			{ItemName: "milk", SampleCount: 5},
			{ItemName: "bread", SampleCount: 2},
		},
		confidence: map[string]int{"low": 1, "medium": 1},
	}
	uc := NewHistoryUseCase(repo, patternRepo, logger.NewNop())

	stats, err := uc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalPatterns != 2 || stats.TotalEvents != 12 {
		t.Errorf("totals = %d patterns / %d events", stats.TotalPatterns, stats.TotalEvents)
	}
	if stats.RecentEvents30Days != 4 {
		t.Errorf("recent = %d, want 4", stats.RecentEvents30Days)
	}
	if stats.MethodBreakdown[model.MethodConfirmed] != 3 {
		t.Errorf("method breakdown = %v", stats.MethodBreakdown)
	}
	if len(stats.TopConsumedItems) != 2 || stats.TopConsumedItems[0].Item != "milk" || stats.TopConsumedItems[0].Count != 3 {
		t.Errorf("top items = %+v", stats.TopConsumedItems)
	}
	if stats.LearningProgress.PatternsLearned != 1 {
		t.Errorf("patterns learned = %d, want 1", stats.LearningProgress.PatternsLearned)
	}
	if stats.LearningProgress.ConfidencePercentage != 50 {
		t.Errorf("confidence pct = %v, want 50", stats.LearningProgress.ConfidencePercentage)
	}
	if stats.LearningProgress.TotalObservations != 7 {
		t.Errorf("observations = %d, want 7", stats.LearningProgress.TotalObservations)
	}
}
