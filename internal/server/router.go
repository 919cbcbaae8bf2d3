package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	confirmationhandler "github.com/pantrywise/consumption-service/internal/confirmation/handler"
	historyhandler "github.com/pantrywise/consumption-service/internal/history/handler"
	patternhandler "github.com/pantrywise/consumption-service/internal/pattern/handler"
	schedulerhandler "github.com/pantrywise/consumption-service/internal/scheduler/handler"
)

type RouterConfig struct {
	PatternHandler      *patternhandler.PatternHandler
	HistoryHandler      *historyhandler.HistoryHandler
	ConfirmationHandler *confirmationhandler.ConfirmationHandler
	SchedulerHandler    *schedulerhandler.SchedulerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/consumption")
	{
		api.GET("/predict", cfg.PatternHandler.Predict)
		api.GET("/patterns", cfg.PatternHandler.Patterns)

		api.GET("/history", cfg.HistoryHandler.History)
		api.POST("/usage", cfg.HistoryHandler.LogUsage)
		api.GET("/usage/history", cfg.HistoryHandler.UsageHistory)
		api.GET("/stats", cfg.HistoryHandler.Stats)

		api.GET("/confirmations/pending", cfg.ConfirmationHandler.Pending)
		api.POST("/confirmations/respond", cfg.ConfirmationHandler.Respond)
		api.GET("/confirmations/count", cfg.ConfirmationHandler.Count)

		api.POST("/check-now", cfg.SchedulerHandler.CheckNow)
		api.GET("/scheduler/status", cfg.SchedulerHandler.Status)
	}

	return router
}
