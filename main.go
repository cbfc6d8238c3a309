package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OpinaApp/opina-backend/config"
	"github.com/OpinaApp/opina-backend/db"
	"github.com/OpinaApp/opina-backend/handlers"
	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/internal/store/postgres"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/OpinaApp/opina-backend/models"
	"github.com/OpinaApp/opina-backend/router"
	"github.com/OpinaApp/opina-backend/services"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// @title           Opina Backend API
// @version         1.0
// @description     Customer feedback intake and triage service.
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database pool. The read-side stores always talk to Postgres
	// directly; the submission lifecycle may instead go through the
	// Supabase REST API (see below).
	dbURL := cfg.Database.URL()
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(dbURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis client with TLS in production
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warnw("Failed to close redis client", "error", err)
		}
	}()

	// The submission lifecycle writes through a narrow record client.
	// Deployments without direct write access to the database route those
	// calls through the Supabase REST API instead.
	var recordClient store.RecordClient
	if cfg.ExternalServices.UseSupabaseStore {
		recordClient = services.NewSupabaseService(services.SupabaseServiceConfig{
			SupabaseURL: cfg.ExternalServices.SupabaseURL,
			SupabaseKey: cfg.ExternalServices.SupabaseServiceKey,
		})
		log.Infow("Record client: Supabase REST")
	} else {
		recordClient = postgres.NewRecordClient(pool)
		log.Infow("Record client: Postgres")
	}

	itemStore := postgres.NewItemStore(pool)
	responseStore := postgres.NewResponseStore(pool)

	itemModel := models.NewFeedbackItemModel(recordClient, itemStore)
	responseModel := models.NewResponseModel(recordClient, responseStore)

	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	deps := router.Dependencies{
		Config:          cfg,
		RedisClient:     redisClient,
		ItemHandler:     handlers.NewFeedbackItemHandler(itemModel),
		ResponseHandler: handlers.NewResponseHandler(responseModel),
		QRHandler:       handlers.NewQRHandler(cfg.Feedback.FormURL),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		Logger:          log,
	}
	r := router.SetupRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
	log.Info("Server exited")
}
