package worker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/service"
)

// RefreshWorker triggers a feed refresh on a fixed interval.
type RefreshWorker struct {
	ingest   *service.IngestService
	interval time.Duration
}

// NewRefreshWorker constructs a RefreshWorker.
func NewRefreshWorker(ingest *service.IngestService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		ingest:   ingest,
		interval: interval,
	}
}

// Start runs one refresh immediately, then repeats on the interval until the
// context is canceled.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting refresh worker")

	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Refresh worker stopped")
			return
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	if _, err := w.ingest.Run(ctx); err != nil {
		if errors.Is(err, service.ErrRefreshInProgress) {
			log.Info().Msg("Skipping scheduled refresh, another run holds the lock")
			return
		}
		log.Error().Err(err).Msg("Scheduled refresh failed")
	}
}
