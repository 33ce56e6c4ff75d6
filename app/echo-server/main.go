package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"watchwise/app/echo-server/router"
	"watchwise/business/analytics"
	"watchwise/business/catalog"
	"watchwise/business/preference"
	"watchwise/business/rating"
	"watchwise/business/recommendation"
	"watchwise/business/watchhistory"
	"watchwise/internal/middleware"
	"watchwise/internal/repository/openrouter"
	psqlRepo "watchwise/internal/repository/postgres"
	redisRepo "watchwise/internal/repository/redis"
	"watchwise/internal/rest"
	"watchwise/pkg/config"
	"watchwise/pkg/database"
	"watchwise/pkg/database/redis"
	"watchwise/pkg/logger"
	"watchwise/pkg/metrics"
	"watchwise/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Watchwise", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}
		logger.Info("Database migrations applied", "version", version, "dirty", dirty)
	}

	// Cross-instance regeneration lock, optional
	var lock recommendation.RegenerationLock = recommendation.NoopLock{}
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, regeneration lock disabled", "error", err)
		} else {
			defer func() {
				if err := redis.CloseRedisClient(redisClient); err != nil {
					logger.Error("Failed to close redis client", err)
				}
			}()
			lock = redisRepo.NewRegenerationLock(redisClient)
			logger.Info("Redis regeneration lock enabled", "host", cfg.Redis.RedisHost)
		}
	}

	gateway := openrouter.NewGateway(openrouter.Config{
		BaseURL:        cfg.OpenRouter.BaseURL,
		APIKey:         cfg.OpenRouter.APIKey,
		Model:          cfg.OpenRouter.Model,
		SiteURL:        cfg.App.SiteURL,
		SiteName:       cfg.App.Name,
		MaxTokens:      cfg.OpenRouter.MaxTokens,
		Temperature:    cfg.OpenRouter.Temperature,
		Timeout:        cfg.OpenRouter.Timeout,
		RequestsPerSec: cfg.OpenRouter.RequestsPerSec,
		Burst:          cfg.OpenRouter.Burst,
		MaxAttempts:    cfg.OpenRouter.MaxAttempts,
	})

	// Init repo
	contentRepo := psqlRepo.NewContentRepository(db)
	catalogRepo := psqlRepo.NewCatalogRepository(db)
	watchedRepo := psqlRepo.NewWatchedRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)
	recommendationCacheRepo := psqlRepo.NewRecommendationCacheRepository(db)
	heartbeatRepo := psqlRepo.NewHeartbeatRepository(db)

	// Init service
	catalogService := catalog.NewCatalogService(contentRepo, catalogRepo)
	watchHistoryService := watchhistory.NewWatchHistoryService(watchedRepo, contentRepo)
	ratingService := rating.NewRatingService(ratingRepo, contentRepo)
	preferenceService := preference.NewPreferenceService(preferenceRepo, catalogService)
	analyticsService := analytics.NewAnalyticsService(watchHistoryService, ratingRepo, catalogService, preferenceService)
	recommendationService := recommendation.NewRecommendationService(
		recommendationCacheRepo,
		watchHistoryService,
		catalogService,
		ratingService,
		preferenceService,
		gateway,
		lock,
		recommendation.Config{
			MaxRecommendations: cfg.Recommendation.MaxRecommendations,
			RecentWatchedLimit: cfg.Recommendation.RecentWatchedLimit,
			CandidateLimit:     cfg.Recommendation.CandidateLimit,
			GenerationTimeout:  cfg.Recommendation.GenerationTimeout,
			LockTTL:            cfg.Recommendation.LockTTL,
			LockWait:           cfg.Recommendation.LockWait,
		},
	)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommendationService, cfg.Recommendation.GenerationTimeout)
	watchedHandler := rest.NewWatchedHandler(watchHistoryService)
	ratingHandler := rest.NewRatingHandler(ratingService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)
	catalogHandler := rest.NewCatalogHandler(catalogService)
	analyticsHandler := rest.NewAnalyticsHandler(analyticsService)
	keepaliveHandler := rest.NewKeepaliveHandler(heartbeatRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(metrics.HTTPMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetWatchedRoutes(api, watchedHandler)
	router.SetRatingRoutes(api, ratingHandler)
	router.SetPreferenceRoutes(api, preferenceHandler)
	router.SetCatalogRoutes(api, catalogHandler)
	router.SetAnalyticsRoutes(api, analyticsHandler)
	router.SetKeepaliveRoutes(e, keepaliveHandler, cfg.Cron.Secret)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
