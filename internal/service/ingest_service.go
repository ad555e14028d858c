package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/cache"
	"github.com/cheapram/cheapram-api/internal/config"
	"github.com/cheapram/cheapram-api/internal/feeds"
	"github.com/cheapram/cheapram-api/internal/metrics"
	"github.com/cheapram/cheapram-api/internal/models"
	"github.com/cheapram/cheapram-api/internal/repository"
	"github.com/cheapram/cheapram-api/pkg/paapi"
)

// ErrRefreshInProgress is returned when another refresh run holds the lock.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// IngestService runs the configured feed adapters and reconciles their
// output into the catalog.
type IngestService struct {
	cfg       *config.Config
	retailers *repository.RetailerRepository
	products  *repository.ProductRepository
	prices    *repository.PriceRepository
	guard     *cache.RefreshGuard
}

// NewIngestService constructs an IngestService. guard may be nil (one-shot
// CLI runs have no redis and no competing writers).
func NewIngestService(
	cfg *config.Config,
	retailers *repository.RetailerRepository,
	products *repository.ProductRepository,
	prices *repository.PriceRepository,
	guard *cache.RefreshGuard,
) *IngestService {
	return &IngestService{
		cfg:       cfg,
		retailers: retailers,
		products:  products,
		prices:    prices,
		guard:     guard,
	}
}

// Run executes RunAll under the refresh lock and records the outcome for the
// health endpoint. Returns ErrRefreshInProgress when another run holds the
// lock. A redis outage downgrades to an unguarded run rather than blocking
// ingestion.
func (s *IngestService) Run(ctx context.Context) ([]models.SourceResult, error) {
	locked := false
	if s.guard != nil {
		ok, err := s.guard.TryLock(ctx)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("refresh lock unavailable, running unguarded")
		case !ok:
			return nil, ErrRefreshInProgress
		default:
			locked = true
		}
	}

	startedAt := time.Now().UTC()
	results := s.RunAll(ctx)
	finishedAt := time.Now().UTC()

	if s.guard != nil {
		if locked {
			if err := s.guard.Unlock(ctx); err != nil {
				log.Warn().Err(err).Msg("failed to release refresh lock")
			}
		}
		status := &cache.RefreshStatus{StartedAt: startedAt, FinishedAt: finishedAt, Sources: results}
		if err := s.guard.SetLastRun(ctx, status); err != nil {
			log.Warn().Err(err).Msg("failed to record refresh status")
		}
	}

	return results, nil
}

// RunAll executes every configured adapter sequentially. Adapter failures
// are isolated: a failing source is logged and skipped while the rest still
// run. The mock adapter runs only when no real feed credentials are present.
func (s *IngestService) RunAll(ctx context.Context) []models.SourceResult {
	var results []models.SourceResult

	run := func(name string, fn func(context.Context) (int, error)) {
		count, err := fn(ctx)
		metrics.RecordFeedRun(name, count, err)
		result := models.SourceResult{Source: name, Listings: count}
		if err != nil {
			log.Error().Err(err).Str("source", name).Msg("feed run failed")
			result.Error = err.Error()
		} else {
			log.Info().Str("source", name).Int("listings", count).Msg("feed run completed")
		}
		results = append(results, result)
	}

	if !s.cfg.Feeds.HasRealFeeds() {
		run("mock", s.runMock)
	}
	if s.cfg.Feeds.NeweggEnabled() {
		run("newegg", s.runNewegg)
	}
	if s.cfg.Feeds.AmazonEnabled() {
		run("amazon", s.runAmazon)
	}

	return results
}

func (s *IngestService) runMock(ctx context.Context) (int, error) {
	retailerID, err := s.retailers.EnsureRetailer(ctx, "CheapRAM Demo", "demo.cheapram.local", nil)
	if err != nil {
		return 0, fmt.Errorf("ensure retailer: %w", err)
	}
	return s.runSource(ctx, feeds.NewMockSource(retailerID))
}

func (s *IngestService) runNewegg(ctx context.Context) (int, error) {
	var affiliateParam *string
	if id := s.cfg.Feeds.NeweggAffiliateID; id != "" {
		affiliateParam = &id
	}
	retailerID, err := s.retailers.EnsureRetailer(ctx, "Newegg", "newegg.com", affiliateParam)
	if err != nil {
		return 0, fmt.Errorf("ensure retailer: %w", err)
	}
	return s.runSource(ctx, feeds.NewNeweggSource(retailerID, s.cfg.Feeds.NeweggFeedURL, s.cfg.Feeds.FetchTimeout))
}

func (s *IngestService) runAmazon(ctx context.Context) (int, error) {
	tag := s.cfg.Feeds.AmazonPartnerTag
	retailerID, err := s.retailers.EnsureRetailer(ctx, "Amazon", "amazon.com", &tag)
	if err != nil {
		return 0, fmt.Errorf("ensure retailer: %w", err)
	}
	client := paapi.NewClient(paapi.Config{
		AccessKey:  s.cfg.Feeds.AmazonAccessKey,
		SecretKey:  s.cfg.Feeds.AmazonSecretKey,
		PartnerTag: tag,
		Region:     s.cfg.Feeds.AmazonRegion,
	})
	return s.runSource(ctx, feeds.NewAmazonSource(retailerID, client, tag))
}

func (s *IngestService) runSource(ctx context.Context, src feeds.Source) (int, error) {
	listings, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}
	if len(listings) == 0 {
		return 0, nil
	}
	if err := s.UpsertListings(ctx, listings); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}
	return len(listings), nil
}

// UpsertListings reconciles normalized listings against the catalog, one
// listing at a time in order. A known (retailer, external id) pair gets its
// descriptive fields overwritten; an unknown one gets a new product row,
// re-read by the same key for its generated id. Either way a new price row
// is appended, so re-running identical listings still extends the history.
//
// No transaction spans the batch: a store-write failure leaves earlier
// listings committed and aborts the rest.
func (s *IngestService) UpsertListings(ctx context.Context, listings []models.NormalizedListing) error {
	now := time.Now().UTC()
	for i := range listings {
		l := &listings[i]

		existing, err := s.products.GetByExternalID(ctx, l.RetailerID, l.ExternalID)
		switch {
		case err == nil:
			if err := s.products.UpdateObserved(ctx, existing.ID, l, now); err != nil {
				return fmt.Errorf("update product %s: %w", l.ExternalID, err)
			}
			if err := s.prices.Insert(ctx, existing.ID, l.PriceCents, l.Currency, now); err != nil {
				return fmt.Errorf("insert price for %s: %w", l.ExternalID, err)
			}

		case errors.Is(err, sql.ErrNoRows):
			if err := s.products.Insert(ctx, l, now); err != nil {
				return fmt.Errorf("insert product %s: %w", l.ExternalID, err)
			}
			inserted, err := s.products.GetByExternalID(ctx, l.RetailerID, l.ExternalID)
			if err != nil {
				return fmt.Errorf("reread product %s: %w", l.ExternalID, err)
			}
			if err := s.prices.Insert(ctx, inserted.ID, l.PriceCents, l.Currency, now); err != nil {
				return fmt.Errorf("insert price for %s: %w", l.ExternalID, err)
			}

		default:
			return fmt.Errorf("lookup product %s: %w", l.ExternalID, err)
		}
	}
	return nil
}
