package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/config"
	"github.com/pantrywise/consumption-service/internal/server"
	"github.com/pantrywise/consumption-service/pkg/cache"
	"github.com/pantrywise/consumption-service/pkg/db"
	"github.com/pantrywise/consumption-service/pkg/logger"
	"github.com/pantrywise/consumption-service/pkg/worker"

	"github.com/pantrywise/consumption-service/internal/baseline"
	baselineRepoPkg "github.com/pantrywise/consumption-service/internal/baseline/repository"
	"github.com/pantrywise/consumption-service/internal/household"
	householdRepoPkg "github.com/pantrywise/consumption-service/internal/household/repository"
	inventoryRepoPkg "github.com/pantrywise/consumption-service/internal/inventory/repository"
	shoppingRepoPkg "github.com/pantrywise/consumption-service/internal/shopping/repository"

	patternH "github.com/pantrywise/consumption-service/internal/pattern/handler"
	patternRepoPkg "github.com/pantrywise/consumption-service/internal/pattern/repository"
	patternUCPkg "github.com/pantrywise/consumption-service/internal/pattern/usecase"

	historyH "github.com/pantrywise/consumption-service/internal/history/handler"
	historyRepoPkg "github.com/pantrywise/consumption-service/internal/history/repository"
	historyUCPkg "github.com/pantrywise/consumption-service/internal/history/usecase"

	confirmationH "github.com/pantrywise/consumption-service/internal/confirmation/handler"
	confirmationRepoPkg "github.com/pantrywise/consumption-service/internal/confirmation/repository"
	confirmationUCPkg "github.com/pantrywise/consumption-service/internal/confirmation/usecase"

	"github.com/pantrywise/consumption-service/internal/scanner"
	"github.com/pantrywise/consumption-service/internal/scheduler"
	schedulerH "github.com/pantrywise/consumption-service/internal/scheduler/handler"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	database, err := db.NewPostgres(&db.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer database.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Repositories
	txRunner := db.NewTxRunner(database)
	baselineRepo := baselineRepoPkg.NewPGRepository(database)
	householdRepo := householdRepoPkg.NewPGRepository(database)
	inventoryRepo := inventoryRepoPkg.NewPGRepository(database)
	shoppingRepo := shoppingRepoPkg.NewPGRepository(database)
	patternRepo := patternRepoPkg.NewPGRepository(database)
	historyRepo := historyRepoPkg.NewPGRepository(database)
	confirmationRepo := confirmationRepoPkg.NewPGRepository(database)

	// 6. Load Baseline Cache
	baselineCache := baseline.NewCache(baselineRepo, appLogger)
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := baselineCache.Load(loadCtx); err != nil {
		loadCancel()
		appLogger.Fatal("Could not load consumption baselines", zap.Error(err))
	}
	loadCancel()

	// 7. Initialize Worker Pool
	pool := worker.NewPool(cfg.Worker.PoolSize, cfg.Worker.QueueSize, appLogger)
	defer pool.Stop()

	// 8. Initialize UseCases
	access := household.NewAccess(householdRepo)
	patternUC := patternUCPkg.NewPatternUseCase(patternRepo, baselineCache, appLogger)
	historyUC := historyUCPkg.NewHistoryUseCase(historyRepo, patternRepo, appLogger)
	confirmationUC := confirmationUCPkg.NewConfirmationUseCase(
		confirmationRepo, inventoryRepo, historyRepo, shoppingRepo,
		patternUC, access, txRunner, redisClient, pool, appLogger,
	)

	// 9. Initialize Scanner & Scheduler
	depletionScanner := scanner.NewScanner(
		householdRepo, inventoryRepo, confirmationRepo,
		patternUC, redisClient, appLogger, cfg.Scheduler.ScanConcurrency,
	)
	sched, err := scheduler.NewScheduler(depletionScanner, appLogger, cfg.Scheduler.CheckHour, cfg.Scheduler.CheckMinute)
	if err != nil {
		appLogger.Fatal("Could not initialize scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// 10. Initialize Handlers & Router
	router := server.NewRouter(server.RouterConfig{
		PatternHandler:      patternH.NewPatternHandler(patternUC, access, appLogger),
		HistoryHandler:      historyH.NewHistoryHandler(historyUC, access, appLogger),
		ConfirmationHandler: confirmationH.NewConfirmationHandler(confirmationUC, appLogger),
		SchedulerHandler:    schedulerH.NewSchedulerHandler(sched, access, appLogger),
	})

	// 11. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
