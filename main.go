package main

import (
	"context"
	"os"
	"time"

	"planner-api/internal/planner"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func initPostgres(log *zap.Logger) (*pgxpool.Pool, error) {
	databaseURL := os.Getenv("DATABASE_URL")

	pgxConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", zap.Error(err))
	}

	pgxPool, err := pgxpool.NewWithConfig(context.Background(), pgxConfig)
	if err != nil {
		log.Fatal("Failed to create pool:", zap.Error(err))
	}

	return pgxPool, nil
}

func calendarLocation(log *zap.Logger) *time.Location {
	name := os.Getenv("PLANNER_TZ")
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("Invalid PLANNER_TZ, falling back to UTC", zap.String("tz", name), zap.Error(err))
		return time.UTC
	}
	return loc
}

func main() {
	_ = godotenv.Load()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	r.Use(cors.New(config))

	log, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", zap.Error(err))
	}

	pgxPool, err := initPostgres(log)
	if err != nil {
		log.Fatal("Failed to initialize Postgres:", zap.Error(err))
	}

	planner.RegisterHandlers(r, planner.NewService(
		log,
		pgxPool,
		planner.NewRangeCalculator(calendarLocation(log)),
	))

	// Register OpenAPI documentation endpoint
	planner.RegisterSwaggerHandlers(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info("Starting server", zap.String("port", port))

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", zap.Error(err))
	}
}
