package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/auth"
	"github.com/pantrywise/consumption-service/internal/history"
	"github.com/pantrywise/consumption-service/internal/history/dto"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/model"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type HistoryHandler struct {
	uc     history.UseCase
	access *household.Access
	logger logger.ZapLogger
}

func NewHistoryHandler(uc history.UseCase, access *household.Access, log logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		uc:     uc,
		access: access,
		logger: log,
	}
}

// History handles GET /history.
func (h *HistoryHandler) History(c *gin.Context) {
	userID, householdID, ok := h.authorize(c)
	if !ok {
		return
	}

	method := c.Query("method")
	switch method {
	case "", model.MethodConfirmed, model.MethodManual, model.MethodRecipe:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "method must be confirmed, manual or recipe"})
		return
	}

	filters := &dto.EventFilters{
		HouseholdID: householdID,
		ItemName:    c.Query("item_name"),
		Method:      method,
		Limit:       parseLimit(c),
		Days:        parseIntQuery(c, "days"),
	}

	events, analytics, err := h.uc.History(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("history query failed", zap.Error(err), zap.Int64("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"analytics": analytics,
	})
}

// LogUsage handles POST /usage.
func (h *HistoryHandler) LogUsage(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return
	}

	var input dto.UsageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	householdID, err := strconv.ParseInt(c.Query("household_id"), 10, 64)
	if err != nil || householdID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_id is required"})
		return
	}
	input.HouseholdID = householdID

	if err := h.access.Authorize(c.Request.Context(), householdID, userID); err != nil {
		abortAccess(c, err)
		return
	}

	event, err := h.uc.LogUsage(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, history.ErrInvalidMethod) || errors.Is(err, history.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("usage logging failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UsageHistory handles GET /usage/history.
func (h *HistoryHandler) UsageHistory(c *gin.Context) {
	_, householdID, ok := h.authorize(c)
	if !ok {
		return
	}

	filters := &dto.UsageFilters{
		HouseholdID: householdID,
		ItemName:    c.Query("item_name"),
		Limit:       parseLimit(c),
		Days:        parseIntQuery(c, "days"),
	}

	events, analytics, err := h.uc.UsageHistory(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("usage history query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"analytics": analytics,
	})
}

// Stats handles GET /stats.
func (h *HistoryHandler) Stats(c *gin.Context) {
	_, householdID, ok := h.authorize(c)
	if !ok {
		return
	}

	stats, err := h.uc.Stats(c.Request.Context(), householdID)
	if err != nil {
		h.logger.Error("stats query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *HistoryHandler) authorize(c *gin.Context) (int64, int64, bool) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return 0, 0, false
	}
	householdID, err := strconv.ParseInt(c.Query("household_id"), 10, 64)
	if err != nil || householdID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_id is required"})
		return 0, 0, false
	}
	if err := h.access.Authorize(c.Request.Context(), householdID, userID); err != nil {
		abortAccess(c, err)
		return 0, 0, false
	}
	return userID, householdID, true
}

func parseLimit(c *gin.Context) int {
	limit := parseIntQuery(c, "limit")
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func parseIntQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func abortAccess(c *gin.Context, err error) {
	switch {
	case errors.Is(err, household.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, household.ErrNotMember), errors.Is(err, household.ErrNotHost):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
