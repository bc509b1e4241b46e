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

	"shopPicks/app/echo-server/router"
	"shopPicks/business/interaction"
	"shopPicks/business/preference"
	"shopPicks/business/product"
	"shopPicks/business/recommendation"
	"shopPicks/internal/middleware"
	psqlRepo "shopPicks/internal/repository/postgres"
	redisRepo "shopPicks/internal/repository/redis"
	"shopPicks/internal/rest"
	"shopPicks/pkg/config"
	"shopPicks/pkg/database/postgres"
	redisdb "shopPicks/pkg/database/redis"
	"shopPicks/pkg/logger"
	"shopPicks/pkg/metrics"

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
	defer logger.Sync()
	logger.Info("Starting ShopPicks", "version", cfg.App.Version)

	db, err := postgres.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	productsRepo := psqlRepo.NewProductRepository(db)
	interactionsRepo := psqlRepo.NewInteractionRepository(db)
	preferencesRepo := psqlRepo.NewPreferenceRepository(db)
	recommendationsRepo := psqlRepo.NewRecommendationRepository(db)

	// Refresh locks live in redis when available, in-process otherwise.
	var locker recommendation.RefreshLocker
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, using in-process refresh locks", "error", err)
	} else {
		defer redisdb.CloseRedisClient(redisClient)
		locker = redisRepo.NewRefreshLockRepository(redisClient, 30*time.Second)
	}

	// Init service
	productService := product.NewProductService(productsRepo)
	interactionService := interaction.NewInteractionService(interactionsRepo, productsRepo)
	preferenceService := preference.NewPreferenceService(preferencesRepo)
	recommendationService := recommendation.NewRecommendationService(
		interactionsRepo,
		preferencesRepo,
		productsRepo,
		recommendationsRepo,
		locker,
		recommendation.Config{
			TTL:            cfg.Reco.TTL,
			DefaultLimit:   cfg.Reco.DefaultLimit,
			RefreshWorkers: cfg.Reco.RefreshWorkers,
		},
	)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	interactionHandler := rest.NewInteractionHandler(interactionService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired, adminOnly)
	router.SetupInteractionRoutes(api, interactionHandler, authRequired)
	router.SetupPreferenceRoutes(api, preferenceHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)

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

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
