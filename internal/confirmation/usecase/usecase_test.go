package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pantrywise/consumption-service/internal/confirmation"
	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	historydto "github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/model"
	patterndto "github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
	"github.com/pantrywise/consumption-service/pkg/worker"
)

type fakeConfirmationRepo struct {
	confirmations map[string]*model.PendingConfirmation
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, c *model.PendingConfirmation) error {
	return nil
}

func (f *fakeConfirmationRepo) GetByConfirmationID(ctx context.Context, confirmationID string) (*model.PendingConfirmation, error) {
	return f.confirmations[confirmationID], nil
}

func (f *fakeConfirmationRepo) MarkResolvedTx(ctx context.Context, tx sqlx.ExtContext, confirmationID, status string, actualRemaining *float64, resolvedAt time.Time) (int64, error) {
	c, ok := f.confirmations[confirmationID]
	if !ok || c.Status != model.ConfirmationPending {
		return 0, nil
	}
	c.Status = status
	c.ActualQuantityRemaining = actualRemaining
	c.ResolvedAt = &resolvedAt
	return 1, nil
}

func (f *fakeConfirmationRepo) ListPending(ctx context.Context, householdID int64) ([]model.PendingConfirmation, error) {
	out := []model.PendingConfirmation{}
	for _, c := range f.confirmations {
		if c.HouseholdID == householdID && c.Status == model.ConfirmationPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeConfirmationRepo) CountPending(ctx context.Context, householdID int64) (int, error) {
	list, _ := f.ListPending(ctx, householdID)
	return len(list), nil
}

func (f *fakeConfirmationRepo) ListPendingKeys(ctx context.Context) (map[dto.PendingKey]struct{}, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	items   map[string]bool
	deleted []string
}

func (f *fakeInventoryRepo) ListItems(ctx context.Context, householdID int64) ([]model.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) DeleteItemTx(ctx context.Context, tx sqlx.ExtContext, householdID int64, itemID string) (int64, error) {
	if !f.items[itemID] {
		return 0, nil
	}
	delete(f.items, itemID)
	f.deleted = append(f.deleted, itemID)
	return 1, nil
}

type fakeHistoryRepo struct {
	events []model.DepletionEvent
}

func (f *fakeHistoryRepo) CreateEventTx(ctx context.Context, tx sqlx.ExtContext, event *model.DepletionEvent) error {
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeHistoryRepo) FindEvents(ctx context.Context, filters *historydto.EventFilters) ([]model.DepletionEvent, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) CountEvents(ctx context.Context, householdID int64) (int, error) {
	return len(f.events), nil
}

func (f *fakeHistoryRepo) CreateUsageEvent(ctx context.Context, event *model.PartialUsageEvent) error {
	return nil
}

func (f *fakeHistoryRepo) FindUsageEvents(ctx context.Context, filters *historydto.UsageFilters) ([]model.PartialUsageEvent, error) {
	return nil, nil
}

type fakeShoppingRepo struct {
	added []model.ShoppingListItem
}

func (f *fakeShoppingRepo) AddItemTx(ctx context.Context, tx sqlx.ExtContext, item *model.ShoppingListItem) error {
	f.added = append(f.added, *item)
	return nil
}

type fakePatternUC struct {
	observations []patterndto.Observation
}

func (f *fakePatternUC) PredictedDays(ctx context.Context, householdID int64, itemName string) (int, string, error) {
	return 14, "baseline", nil
}

func (f *fakePatternUC) PredictedDaysForQuantity(ctx context.Context, householdID int64, itemName string, quantity float64, unit string) (int, string, error) {
	return 14, "baseline", nil
}

func (f *fakePatternUC) ApplyObservationTx(ctx context.Context, tx sqlx.ExtContext, obs *patterndto.Observation) (*model.Pattern, error) {
	f.observations = append(f.observations, *obs)
	return &model.Pattern{}, nil
}

func (f *fakePatternUC) Find(ctx context.Context, householdID int64, itemName string) (*model.Pattern, error) {
	return nil, nil
}

func (f *fakePatternUC) ListPatterns(ctx context.Context, filters *patterndto.PatternFilters) ([]model.Pattern, error) {
	return nil, nil
}

type fakeHouseholdRepo struct{}

func (fakeHouseholdRepo) FindByID(ctx context.Context, id int64) (*model.Household, error) {
	if id == 1 {
		return &model.Household{ID: 1, HostID: 10}, nil
	}
	return nil, nil
}

func (fakeHouseholdRepo) IsMember(ctx context.Context, householdID, userID int64) (bool, error) {
	return userID == 11, nil
}

func (fakeHouseholdRepo) ListIDsWithItems(ctx context.Context) ([]int64, error) {
	return nil, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error {
	return fn(nil)
}

type fakeStore struct {
	values  map[string]string
	deleted []string
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", errors.New("redis: nil")
}

func (f *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

type fixture struct {
	repo     *fakeConfirmationRepo
	inv      *fakeInventoryRepo
	hist     *fakeHistoryRepo
	shop     *fakeShoppingRepo
	patterns *fakePatternUC
	store    *fakeStore
	pool     *worker.Pool
	uc       confirmation.UseCase
}

func newFixture(confirmations ...*model.PendingConfirmation) *fixture {
	f := &fixture{
		repo:     &fakeConfirmationRepo{confirmations: map[string]*model.PendingConfirmation{}},
		inv:      &fakeInventoryRepo{items: map[string]bool{}},
		hist:     &fakeHistoryRepo{},
		shop:     &fakeShoppingRepo{},
		patterns: &fakePatternUC{},
		store:    &fakeStore{},
		pool:     worker.NewPool(1, 8, logger.NewNop()),
	}
	for _, c := range confirmations {
		f.repo.confirmations[c.ConfirmationID] = c
		f.inv.items[c.ItemID] = true
	}
	f.uc = NewConfirmationUseCase(
		f.repo, f.inv, f.hist, f.shop, f.patterns,
		household.NewAccess(fakeHouseholdRepo{}),
		fakeTxRunner{}, f.store, f.pool, logger.NewNop(),
	)
	return f
}

func pendingConfirmation() *model.PendingConfirmation {
	now := time.Now().UTC()
	return &model.PendingConfirmation{
		ConfirmationID:       "c-1",
		HouseholdID:          1,
		ItemID:               "item-1",
		ItemName:             "milk",
		Quantity:             2,
		Unit:                 "l",
		AddedAt:              now.AddDate(0, 0, -6),
		PredictedDepletionAt: now,
		Status:               model.ConfirmationPending,
		ExpiresAt:            now.Add(7 * 24 * time.Hour),
		CreatedAt:            now,
	}
}

func TestRespondInvalidResponse(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	_, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "c-1", Response: "maybe",
	})
	if !errors.Is(err, confirmation.ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestRespondUnknownConfirmation(t *testing.T) {
	f := newFixture()
	defer f.pool.Stop()

	_, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "ghost", Response: model.ConfirmationConfirmed,
	})
	if !errors.Is(err, confirmation.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRespondRequiresMembership(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	_, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 99, ConfirmationID: "c-1", Response: model.ConfirmationConfirmed,
	})
	if !errors.Is(err, household.ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
}

func TestRespondConfirmed(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	result, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "c-1", Response: model.ConfirmationConfirmed,
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if !result.ItemRemoved || !result.AddedToList {
		t.Errorf("result = %+v", result)
	}
	if len(f.inv.deleted) != 1 || f.inv.deleted[0] != "item-1" {
		t.Errorf("deleted items = %v", f.inv.deleted)
	}
	if len(f.hist.events) != 1 {
		t.Fatalf("events = %d, want 1", len(f.hist.events))
	}
	event := f.hist.events[0]
	if event.Method != model.MethodConfirmed || event.DaysLasted != 6 {
		t.Errorf("event = %+v", event)
	}
	if len(f.patterns.observations) != 1 {
		t.Fatalf("observations = %d, want 1", len(f.patterns.observations))
	}
	if f.patterns.observations[0].DaysLasted != 6 {
		t.Errorf("observation = %+v", f.patterns.observations[0])
	}
	if len(f.shop.added) != 1 || !f.shop.added[0].AutoAdded {
		t.Errorf("shopping additions = %+v", f.shop.added)
	}
	if f.repo.confirmations["c-1"].Status != model.ConfirmationConfirmed {
		t.Errorf("status = %s", f.repo.confirmations["c-1"].Status)
	}
}

func TestRespondConfirmedSameDayCountsOneDay(t *testing.T) {
	c := pendingConfirmation()
	c.AddedAt = time.Now().UTC().Add(-2 * time.Hour)
	f := newFixture(c)
	defer f.pool.Stop()

	result, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "c-1", Response: model.ConfirmationConfirmed,
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if result.DaysLasted == nil || *result.DaysLasted != 1 {
		t.Errorf("days lasted = %v, want floor of 1", result.DaysLasted)
	}
}

func TestRespondDeniedTouchesNothing(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	remaining := 0.5
	result, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID:                  11,
		ConfirmationID:          "c-1",
		Response:                model.ConfirmationDenied,
		ActualQuantityRemaining: &remaining,
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if result.ItemRemoved || result.AddedToList {
		t.Errorf("result = %+v", result)
	}
	if len(f.inv.deleted) != 0 {
		t.Error("denied response deleted inventory")
	}
	if len(f.hist.events) != 0 {
		t.Error("denied response recorded a depletion event")
	}
	if len(f.patterns.observations) != 0 {
		t.Error("denied response trained the pattern")
	}
	c := f.repo.confirmations["c-1"]
	if c.Status != model.ConfirmationDenied {
		t.Errorf("status = %s, want denied", c.Status)
	}
	if c.ActualQuantityRemaining == nil || *c.ActualQuantityRemaining != 0.5 {
		t.Errorf("actual remaining = %v, want 0.5", c.ActualQuantityRemaining)
	}
}

func TestRespondExactlyOnce(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	input := &dto.RespondInput{UserID: 11, ConfirmationID: "c-1", Response: model.ConfirmationConfirmed}
	if _, err := f.uc.Respond(context.Background(), input); err != nil {
		t.Fatalf("first Respond: %v", err)
	}
	if _, err := f.uc.Respond(context.Background(), input); !errors.Is(err, confirmation.ErrAlreadyResolved) {
		t.Fatalf("second Respond err = %v, want ErrAlreadyResolved", err)
	}
	if len(f.hist.events) != 1 {
		t.Errorf("events = %d, resolution must apply once", len(f.hist.events))
	}
}

func TestRespondConfirmedMissingItem(t *testing.T) {
	c := pendingConfirmation()
	f := newFixture(c)
	defer f.pool.Stop()
	delete(f.inv.items, c.ItemID)

	_, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "c-1", Response: model.ConfirmationConfirmed,
	})
	if !errors.Is(err, confirmation.ErrItemMissing) {
		t.Fatalf("err = %v, want ErrItemMissing", err)
	}
	if len(f.hist.events) != 0 || len(f.patterns.observations) != 0 {
		t.Error("aborted resolution still wrote downstream records")
	}
}

func TestCountPendingCachesValue(t *testing.T) {
	f := newFixture(pendingConfirmation())
	defer f.pool.Stop()

	count, err := f.uc.CountPending(context.Background(), 11, 1)
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if len(f.store.values) != 1 {
		t.Errorf("cache entries = %d, want 1", len(f.store.values))
	}

	// Cached value is served even if the table changes underneath.
	f.repo.confirmations = map[string]*model.PendingConfirmation{}
	count, err = f.uc.CountPending(context.Background(), 11, 1)
	if err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want cached 1", count)
	}
}

func TestRespondInvalidatesPendingCount(t *testing.T) {
	f := newFixture(pendingConfirmation())

	if _, err := f.uc.CountPending(context.Background(), 11, 1); err != nil {
		t.Fatalf("CountPending: %v", err)
	}
	if _, err := f.uc.Respond(context.Background(), &dto.RespondInput{
		UserID: 11, ConfirmationID: "c-1", Response: model.ConfirmationDenied,
	}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	// Stop drains the queue, so the invalidation task has run.
	f.pool.Stop()
	if len(f.store.deleted) == 0 {
		t.Error("pending count cache never invalidated")
	}
}
