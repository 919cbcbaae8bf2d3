package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pantrywise/consumption-service/config"
	"github.com/pantrywise/consumption-service/internal/baseline"
	baselineRepoPkg "github.com/pantrywise/consumption-service/internal/baseline/repository"
	"github.com/pantrywise/consumption-service/pkg/db"
	"github.com/pantrywise/consumption-service/pkg/logger"
)

// Seeds the consumption_baselines table from the built-in reference data.
// Safe to re-run; existing item names are updated in place.
func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.Config{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         "info",
	})
	defer appLogger.Sync()

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

	repo := baselineRepoPkg.NewPGRepository(database)
	rows := baseline.DefaultRows()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := repo.BulkInsert(ctx, rows); err != nil {
		appLogger.Fatal("Baseline seeding failed", zap.Error(err))
	}

	appLogger.Info("Baseline table seeded", zap.Int("rows", len(rows)))
}
