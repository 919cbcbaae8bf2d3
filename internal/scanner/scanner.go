package scanner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pantrywise/consumption-service/internal/baseline"
	"github.com/pantrywise/consumption-service/internal/confirmation"
	confirmationdto "github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/inventory"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern"
	"github.com/pantrywise/consumption-service/pkg/cache"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

// Predictions are capped so a stale baseline can never push a check-in
// further than this many days out.
const MaxPredictedDays = 90

// Window a member has to answer before the confirmation goes inactive.
const ConfirmationWindow = 7 * 24 * time.Hour

const (
	scanLockKey = "consumption:scan:lock"
	scanLockTTL = 10 * time.Minute
)

// ErrScanInProgress is returned when another scan holds the lock.
var ErrScanInProgress = errors.New("depletion scan already in progress")

// Summary reports what one scan pass did.
type Summary struct {
	HouseholdsChecked    int       `json:"households_checked"`
	ItemsChecked         int       `json:"items_checked"`
	ConfirmationsCreated int       `json:"confirmations_created"`
	ConfirmationsSkipped int       `json:"confirmations_skipped"`
	Errors               []string  `json:"errors"`
	StartedAt            time.Time `json:"started_at"`
	FinishedAt           time.Time `json:"finished_at"`
}

// Scanner walks every household's inventory looking for items whose
// predicted lifetime has elapsed and opens confirmation requests for them.
type Scanner struct {
	householdRepo    household.Repository
	inventoryRepo    inventory.Repository
	confirmationRepo confirmation.Repository
	patternUC        pattern.UseCase
	locker           cache.Locker
	logger           logger.ZapLogger
	concurrency      int
}

func NewScanner(
	householdRepo household.Repository,
	inventoryRepo inventory.Repository,
	confirmationRepo confirmation.Repository,
	patternUC pattern.UseCase,
	locker cache.Locker,
	log logger.ZapLogger,
	concurrency int,
) *Scanner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Scanner{
		householdRepo:    householdRepo,
		inventoryRepo:    inventoryRepo,
		confirmationRepo: confirmationRepo,
		patternUC:        patternUC,
		locker:           locker,
		logger:           log,
		concurrency:      concurrency,
	}
}

// Scan runs one full pass over all households with inventory. Concurrent
// scans are serialized by a distributed lock; the loser gets
// ErrScanInProgress instead of a duplicate pass.
func (s *Scanner) Scan(ctx context.Context) (*Summary, error) {
	lockValue := uuid.NewString()
	acquired, err := s.locker.AcquireLock(ctx, scanLockKey, lockValue, scanLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrScanInProgress
	}
	defer func() {
		if relErr := s.locker.ReleaseLock(context.WithoutCancel(ctx), scanLockKey, lockValue); relErr != nil {
			s.logger.Warn("scan lock release failed", zap.Error(relErr))
		}
	}()

	summary := &Summary{Errors: []string{}, StartedAt: time.Now().UTC()}

	householdIDs, err := s.householdRepo.ListIDsWithItems(ctx)
	if err != nil {
		return nil, err
	}

	pendingKeys, err := s.confirmationRepo.ListPendingKeys(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range householdIDs {
		householdID := id
		g.Go(func() error {
			s.scanHousehold(gctx, householdID, pendingKeys, &mu, summary)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.HouseholdsChecked = len(householdIDs)
	summary.FinishedAt = time.Now().UTC()

	s.logger.Info("depletion scan finished",
		zap.Int("households_checked", summary.HouseholdsChecked),
		zap.Int("items_checked", summary.ItemsChecked),
		zap.Int("confirmations_created", summary.ConfirmationsCreated),
		zap.Int("confirmations_skipped", summary.ConfirmationsSkipped),
		zap.Int("errors", len(summary.Errors)),
	)

	return summary, nil
}

func (s *Scanner) scanHousehold(ctx context.Context, householdID int64, pendingKeys map[confirmationdto.PendingKey]struct{}, mu *sync.Mutex, summary *Summary) {
	items, err := s.inventoryRepo.ListItems(ctx, householdID)
	if err != nil {
		mu.Lock()
		summary.Errors = append(summary.Errors, fmt.Sprintf("household %d: list items: %v", householdID, err))
		mu.Unlock()
		return
	}

	now := time.Now().UTC()
	for _, group := range groupByName(items) {
		mu.Lock()
		summary.ItemsChecked += len(group)
		mu.Unlock()

		// Same-name items deplete oldest-first, so only the oldest
		// instance can be due.
		oldest := oldestUsable(group)
		if oldest == nil {
			continue
		}

		if err := s.checkItem(ctx, householdID, oldest, now, pendingKeys, mu, summary); err != nil {
			mu.Lock()
			summary.Errors = append(summary.Errors, fmt.Sprintf("household %d item %s: %v", householdID, oldest.Name, err))
			mu.Unlock()
		}
	}
}

func (s *Scanner) checkItem(ctx context.Context, householdID int64, item *model.InventoryItem, now time.Time, pendingKeys map[confirmationdto.PendingKey]struct{}, mu *sync.Mutex, summary *Summary) error {
	elapsed := int(math.Floor(now.Sub(*item.AddedAt).Hours() / 24))

	predicted, _, err := s.patternUC.PredictedDays(ctx, householdID, item.Name)
	if err != nil {
		return err
	}
	if predicted > MaxPredictedDays {
		predicted = MaxPredictedDays
	}
	if elapsed < predicted {
		return nil
	}

	key := confirmationdto.PendingKey{HouseholdID: householdID, ItemID: item.ItemID}
	mu.Lock()
	if _, exists := pendingKeys[key]; exists {
		summary.ConfirmationsSkipped++
		mu.Unlock()
		return nil
	}
	// Claim the key before the insert so a second group with the same
	// item in this pass cannot race us.
	pendingKeys[key] = struct{}{}
	mu.Unlock()

	c := &model.PendingConfirmation{
		ConfirmationID:       uuid.NewString(),
		HouseholdID:          householdID,
		ItemID:               item.ItemID,
		ItemName:             baseline.NormalizeName(item.Name),
		Quantity:             item.Quantity,
		Unit:                 item.Unit,
		AddedAt:              *item.AddedAt,
		PredictedDepletionAt: now,
		Status:               model.ConfirmationPending,
		ExpiresAt:            now.Add(ConfirmationWindow),
		CreatedAt:            now,
	}
	if err := s.confirmationRepo.Create(ctx, c); err != nil {
		if errors.Is(err, confirmation.ErrDuplicatePending) {
			mu.Lock()
			summary.ConfirmationsSkipped++
			mu.Unlock()
			return nil
		}
		return err
	}

	mu.Lock()
	summary.ConfirmationsCreated++
	mu.Unlock()

	s.logger.Info("confirmation requested",
		zap.Int64("household_id", householdID),
		zap.String("item_name", c.ItemName),
		zap.Int("elapsed_days", elapsed),
		zap.Int("predicted_days", predicted),
	)
	return nil
}

// groupByName buckets items by normalized name. Group order is stable so
// scan summaries are deterministic for a given inventory.
func groupByName(items []model.InventoryItem) [][]*model.InventoryItem {
	byName := map[string][]*model.InventoryItem{}
	names := []string{}
	for i := range items {
		name := baseline.NormalizeName(items[i].Name)
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = append(byName[name], &items[i])
	}
	sort.Strings(names)

	groups := make([][]*model.InventoryItem, 0, len(names))
	for _, name := range names {
		groups = append(groups, byName[name])
	}
	return groups
}

// oldestUsable picks the oldest well-formed instance in a group. Items with
// no added_at or non-positive quantity are malformed and never evaluated.
func oldestUsable(group []*model.InventoryItem) *model.InventoryItem {
	var oldest *model.InventoryItem
	for _, item := range group {
		if item.AddedAt == nil || item.Quantity <= 0 {
			continue
		}
		if oldest == nil || item.AddedAt.Before(*oldest.AddedAt) {
			oldest = item
		}
	}
	return oldest
}
