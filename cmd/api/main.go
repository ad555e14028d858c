package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/cache"
	"github.com/cheapram/cheapram-api/internal/config"
	"github.com/cheapram/cheapram-api/internal/database"
	"github.com/cheapram/cheapram-api/internal/handler"
	"github.com/cheapram/cheapram-api/internal/metrics"
	"github.com/cheapram/cheapram-api/internal/middleware"
	"github.com/cheapram/cheapram-api/internal/repository"
	"github.com/cheapram/cheapram-api/internal/service"
	"github.com/cheapram/cheapram-api/internal/worker"
)

// main is the application entrypoint for the CheapRAM API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting cheapram api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis. The API can serve reads without it, so a failure
	// degrades to running without the refresh lock instead of exiting.
	var guard *cache.RefreshGuard
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis connection failed, refresh lock disabled")
	} else {
		defer redisClient.Close()
		guard = cache.NewRefreshGuard(redisClient)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Initialize repositories
	retailerRepo := repository.NewRetailerRepository(db)
	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// 5. Initialize services
	ingestSvc := service.NewIngestService(cfg, retailerRepo, productRepo, priceRepo, guard)
	listingSvc := service.NewListingService(listingRepo, retailerRepo, productRepo, couponRepo)

	// 6. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, guard),
		Listing: handler.NewListingHandler(listingSvc),
		Price:   handler.NewPriceHandler(priceRepo),
		Coupon:  handler.NewCouponHandler(couponRepo),
		Refresh: handler.NewRefreshHandler(ingestSvc, guard),
	}

	// 7. Initialize middleware
	refreshAuthMw := middleware.NewRefreshAuthMiddleware(cfg.CronSecret)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, refreshAuthMw)

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start the interval refresh worker when configured
	if cfg.Worker.RefreshInterval > 0 {
		go worker.NewRefreshWorker(ingestSvc, cfg.Worker.RefreshInterval).Start(ctx)
	}

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Listing *handler.ListingHandler
	Price   *handler.PriceHandler
	Coupon  *handler.CouponHandler
	Refresh *handler.RefreshHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, refreshAuth *middleware.RefreshAuthMiddleware) {
	router.GET("/v1/health", handlers.Health.Check)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Storefront routes (public)
	router.GET("/v1/ram", handlers.Listing.GetListings)
	router.GET("/v1/ram/cheapest", handlers.Listing.GetCheapest)
	router.GET("/v1/ram/:id/history", handlers.Price.GetHistory)
	router.GET("/v1/filters", handlers.Listing.GetFilters)
	router.GET("/v1/coupons", handlers.Coupon.GetByRetailer)

	// Refresh routes (protected with cron secret). Hosted cron services often
	// only issue GETs, so the trigger answers both verbs.
	refresh := router.Group("/v1/refresh")
	refresh.Use(refreshAuth.Handle())
	{
		refresh.POST("", handlers.Refresh.Trigger)
		refresh.GET("", handlers.Refresh.Trigger)
		refresh.GET("/status", handlers.Refresh.Status)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
