package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/internal/auth"
	"github.com/pantrywise/consumption-service/internal/household"
	"github.com/pantrywise/consumption-service/internal/scanner"
	"github.com/pantrywise/consumption-service/internal/scheduler"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

type SchedulerHandler struct {
	sched  *scheduler.Scheduler
	access *household.Access
	logger logger.ZapLogger
}

func NewSchedulerHandler(sched *scheduler.Scheduler, access *household.Access, log logger.ZapLogger) *SchedulerHandler {
	return &SchedulerHandler{
		sched:  sched,
		access: access,
		logger: log,
	}
}

type checkNowRequest struct {
	HouseholdID *int64 `json:"household_id,omitempty"`
}

// CheckNow handles POST /check-now. The scan itself always covers every
// household; a household_id in the body only gates who may trigger it.
func (h *SchedulerHandler) CheckNow(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user context"})
		return
	}

	var req checkNowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.HouseholdID != nil {
		if err := h.access.AuthorizeHost(c.Request.Context(), *req.HouseholdID, userID); err != nil {
			switch {
			case errors.Is(err, household.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, household.ErrNotHost):
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				h.logger.Error("check-now authorization failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
	}

	summary, err := h.sched.RunNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, scanner.ErrScanInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("manual scan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Status handles GET /scheduler/status.
func (h *SchedulerHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.sched.Jobs()})
}
