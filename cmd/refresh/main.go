package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/config"
	"github.com/cheapram/cheapram-api/internal/database"
	"github.com/cheapram/cheapram-api/internal/repository"
	"github.com/cheapram/cheapram-api/internal/service"
)

// main runs one feed refresh cycle and exits. Intended for cron or manual
// invocation alongside (or instead of) the HTTP trigger.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(1)
	}
	defer db.Close()

	retailerRepo := repository.NewRetailerRepository(db)
	productRepo := repository.NewProductRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// No refresh guard: a one-shot process has no competing in-process
	// writers and should not depend on redis.
	ingestSvc := service.NewIngestService(cfg, retailerRepo, productRepo, priceRepo, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	results := ingestSvc.RunAll(ctx)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	log.Info().Int("sources", len(results)).Int("failed", failed).Msg("refresh finished")
	if failed == len(results) && len(results) > 0 {
		os.Exit(1)
	}
}
