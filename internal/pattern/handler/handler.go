package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/auth"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/pattern"
	"github.com/pantrywise/consumption-service/internal/pattern/dto"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type PatternHandler struct {
	uc     pattern.UseCase
	access *household.Access
	logger logger.ZapLogger
}

func NewPatternHandler(uc pattern.UseCase, access *household.Access, log logger.ZapLogger) *PatternHandler {
	return &PatternHandler{
		uc:     uc,
		access: access,
		logger: log,
	}
}

// Predict handles GET /predict.
func (h *PatternHandler) Predict(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return
	}

	householdID, err := strconv.ParseInt(c.Query("household_id"), 10, 64)
	if err != nil || householdID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_id is required"})
		return
	}
	itemName := c.Query("item_name")
	if itemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_name is required"})
		return
	}

	if err := h.access.Authorize(c.Request.Context(), householdID, userID); err != nil {
		abortAccess(c, err)
		return
	}

	var (
		days           int
		predictionType string
	)
	if rawQty := c.Query("quantity"); rawQty != "" {
		quantity, convErr := strconv.ParseFloat(rawQty, 64)
		if convErr != nil || quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive number"})
			return
		}
		days, predictionType, err = h.uc.PredictedDaysForQuantity(c.Request.Context(), householdID, itemName, quantity, c.Query("unit"))
	} else {
		days, predictionType, err = h.uc.PredictedDays(c.Request.Context(), householdID, itemName)
	}
	if err != nil {
		h.logger.Error("prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_name":       itemName,
		"predicted_days":  days,
		"prediction_type": predictionType,
	})
}

// Patterns handles GET /patterns.
func (h *PatternHandler) Patterns(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return
	}

	householdID, err := strconv.ParseInt(c.Query("household_id"), 10, 64)
	if err != nil || householdID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "household_id is required"})
		return
	}

	if err := h.access.Authorize(c.Request.Context(), householdID, userID); err != nil {
		abortAccess(c, err)
		return
	}

	patterns, err := h.uc.ListPatterns(c.Request.Context(), &dto.PatternFilters{
		HouseholdID: householdID,
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
	})
	if err != nil {
		h.logger.Error("pattern listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patterns": patterns,
		"total":    len(patterns),
	})
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
