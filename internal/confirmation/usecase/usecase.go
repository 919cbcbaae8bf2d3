package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/confirmation"
	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/history"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/inventory"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/internal/pattern"
	patterndto "github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/internal/shopping"
	"github.com/pantrywise/consumption-service/pkg/cache"
	"github.com/pantrywise/consumption-service/pkg/db"
	"github.com/pantrywise/consumption-service/pkg/logger"
	"github.com/pantrywise/consumption-service/pkg/worker"
)

const pendingCountTTL = 5 * time.Minute

func pendingCountKey(householdID int64) string {
	return fmt.Sprintf("consumption:pending_count:%d", householdID)
}

type confirmationUseCase struct {
	repo          confirmation.Repository
	inventoryRepo inventory.Repository
	historyRepo   history.Repository
	shoppingRepo  shopping.Repository
	patternUC     pattern.UseCase
	access        *household.Access
	txRunner      db.TxRunner
	store         cache.Store
	pool          *worker.Pool
	logger        logger.ZapLogger
}

func NewConfirmationUseCase(
	repo confirmation.Repository,
	inventoryRepo inventory.Repository,
	historyRepo history.Repository,
	shoppingRepo shopping.Repository,
	patternUC pattern.UseCase,
	access *household.Access,
	txRunner db.TxRunner,
	store cache.Store,
	pool *worker.Pool,
	log logger.ZapLogger,
) confirmation.UseCase {
	return &confirmationUseCase{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		historyRepo:   historyRepo,
		shoppingRepo:  shoppingRepo,
		patternUC:     patternUC,
		access:        access,
		txRunner:      txRunner,
		store:         store,
		pool:          pool,
		logger:        log,
	}
}

func (uc *confirmationUseCase) ListPending(ctx context.Context, userID, householdID int64) ([]model.PendingConfirmation, error) {
	if err := uc.access.Authorize(ctx, householdID, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListPending(ctx, householdID)
}

func (uc *confirmationUseCase) CountPending(ctx context.Context, userID, householdID int64) (int, error) {
	if err := uc.access.Authorize(ctx, householdID, userID); err != nil {
		return 0, err
	}

	key := pendingCountKey(householdID)
	if cached, err := uc.store.Get(ctx, key); err == nil {
		if n, convErr := strconv.Atoi(cached); convErr == nil {
			return n, nil
		}
	} else if !cache.IsCacheMiss(err) {
		uc.logger.Warn("pending count cache read failed", zap.Error(err))
	}

	count, err := uc.repo.CountPending(ctx, householdID)
	if err != nil {
		return 0, err
	}
	if err := uc.store.Set(ctx, key, strconv.Itoa(count), pendingCountTTL); err != nil {
		uc.logger.Warn("pending count cache write failed", zap.Error(err))
	}
	return count, nil
}

func (uc *confirmationUseCase) Respond(ctx context.Context, input *dto.RespondInput) (*dto.RespondResult, error) {
	if input.Response != model.ConfirmationConfirmed && input.Response != model.ConfirmationDenied {
		return nil, confirmation.ErrInvalidResponse
	}

	c, err := uc.repo.GetByConfirmationID(ctx, input.ConfirmationID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, confirmation.ErrNotFound
	}
	if err := uc.access.Authorize(ctx, c.HouseholdID, input.UserID); err != nil {
		return nil, err
	}
	if c.Status != model.ConfirmationPending {
		return nil, confirmation.ErrAlreadyResolved
	}

	now := time.Now().UTC()
	result := &dto.RespondResult{
		ConfirmationID: c.ConfirmationID,
		Status:         input.Response,
		ItemName:       c.ItemName,
	}

	if input.Response == model.ConfirmationDenied {
		err = uc.txRunner.WithinTx(ctx, func(tx sqlx.ExtContext) error {
			affected, txErr := uc.repo.MarkResolvedTx(ctx, tx, c.ConfirmationID, model.ConfirmationDenied, input.ActualQuantityRemaining, now)
			if txErr != nil {
				return txErr
			}
			if affected == 0 {
				return confirmation.ErrAlreadyResolved
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		uc.logger.Info("depletion denied",
			zap.String("confirmation_id", c.ConfirmationID),
			zap.Int64("household_id", c.HouseholdID),
			zap.String("item_name", c.ItemName),
		)
		uc.invalidatePendingCount(c.HouseholdID)
		return result, nil
	}

	daysLasted := daysBetween(c.AddedAt, now)
	err = uc.txRunner.WithinTx(ctx, func(tx sqlx.ExtContext) error {
		affected, txErr := uc.repo.MarkResolvedTx(ctx, tx, c.ConfirmationID, model.ConfirmationConfirmed, nil, now)
		if txErr != nil {
			return txErr
		}
		if affected == 0 {
			return confirmation.ErrAlreadyResolved
		}

		deleted, txErr := uc.inventoryRepo.DeleteItemTx(ctx, tx, c.HouseholdID, c.ItemID)
		if txErr != nil {
			return txErr
		}
		if deleted == 0 {
			return confirmation.ErrItemMissing
		}

		var rate *float64
		if daysLasted > 0 && c.Quantity > 0 {
			r := c.Quantity / float64(daysLasted)
			rate = &r
		}
		event := &model.DepletionEvent{
			HouseholdID:     c.HouseholdID,
			ItemID:          &c.ItemID,
			ItemName:        c.ItemName,
			Quantity:        c.Quantity,
			Unit:            c.Unit,
			AddedAt:         c.AddedAt,
			DepletedAt:      now,
			DaysLasted:      daysLasted,
			ConsumptionRate: rate,
			Method:          model.MethodConfirmed,
			CreatedAt:       now,
		}
		if txErr := uc.historyRepo.CreateEventTx(ctx, tx, event); txErr != nil {
			return txErr
		}

		obs := &patterndto.Observation{
			HouseholdID: c.HouseholdID,
			ItemName:    c.ItemName,
			DaysLasted:  daysLasted,
			Quantity:    &c.Quantity,
			Unit:        &c.Unit,
			ObservedAt:  now,
		}
		if _, txErr := uc.patternUC.ApplyObservationTx(ctx, tx, obs); txErr != nil {
			return txErr
		}

		listItem := &model.ShoppingListItem{
			ItemID:      uuid.NewString(),
			HouseholdID: c.HouseholdID,
			UserID:      input.UserID,
			Name:        c.ItemName,
			Quantity:    c.Quantity,
			Unit:        c.Unit,
			AutoAdded:   true,
			CreatedAt:   now,
			ModifiedAt:  now,
		}
		return uc.shoppingRepo.AddItemTx(ctx, tx, listItem)
	})
	if err != nil {
		return nil, err
	}

	result.ItemRemoved = true
	result.DaysLasted = &daysLasted
	result.AddedToList = true

	uc.logger.Info("depletion confirmed",
		zap.String("confirmation_id", c.ConfirmationID),
		zap.Int64("household_id", c.HouseholdID),
		zap.String("item_name", c.ItemName),
		zap.Int("days_lasted", daysLasted),
	)
	uc.invalidatePendingCount(c.HouseholdID)

	return result, nil
}

// invalidatePendingCount drops the cached badge count off the request path.
// A full queue just means the entry ages out by TTL instead.
func (uc *confirmationUseCase) invalidatePendingCount(householdID int64) {
	key := pendingCountKey(householdID)
	err := uc.pool.Submit(worker.Task{
		Name: "invalidate-pending-count",
		Run: func(ctx context.Context) error {
			return uc.store.Del(ctx, key)
		},
	})
	if err != nil {
		uc.logger.Warn("pending count invalidation not queued", zap.Error(err))
	}
}

func daysBetween(from, to time.Time) int {
	days := int(math.Floor(to.Sub(from).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
