package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/auth"
	"github.com/pantrywise/consumption-service/internal/confirmation"
	"github.com/pantrywise/consumption-service/internal/confirmation/dto"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type ConfirmationHandler struct {
	uc     confirmation.UseCase
	logger logger.ZapLogger
}

func NewConfirmationHandler(uc confirmation.UseCase, log logger.ZapLogger) *ConfirmationHandler {
	return &ConfirmationHandler{
		uc:     uc,
		logger: log,
	}
}

// Pending handles GET /confirmations/pending.
func (h *ConfirmationHandler) Pending(c *gin.Context) {
	userID, householdID, ok := requireHousehold(c)
	if !ok {
		return
	}

	confirmations, err := h.uc.ListPending(c.Request.Context(), userID, householdID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"confirmations": confirmations,
		"total":         len(confirmations),
	})
}

// Count handles GET /confirmations/count.
func (h *ConfirmationHandler) Count(c *gin.Context) {
	userID, householdID, ok := requireHousehold(c)
	if !ok {
		return
	}

	count, err := h.uc.CountPending(c.Request.Context(), userID, householdID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending_count": count})
}

// Respond handles POST /confirmations/respond.
func (h *ConfirmationHandler) Respond(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return
	}

	var input dto.RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.UserID = userID

	result, err := h.uc.Respond(c.Request.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, confirmation.ErrInvalidResponse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, confirmation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, confirmation.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, confirmation.ErrItemMissing):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.fail(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ConfirmationHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, household.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, household.ErrNotMember), errors.Is(err, household.ErrNotHost):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.logger.Error("confirmation request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func requireHousehold(c *gin.Context) (int64, int64, bool) {
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
	return userID, householdID, true
}
