package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cheapram/cheapram-api/internal/models"
)

const (
	refreshLockKey   = "refresh:lock"
	refreshStatusKey = "refresh:last_run"

	// lockTTL bounds how long a crashed run can block the next one.
	lockTTL   = 10 * time.Minute
	statusTTL = 24 * time.Hour
)

// RefreshStatus records the outcome of the last ingestion run.
type RefreshStatus struct {
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt time.Time             `json:"finishedAt"`
	Sources    []models.SourceResult `json:"sources"`
}

// RefreshGuard serializes ingestion runs via a redis lock and keeps the last
// run's status. Ingestion assumes a single writer; the guard upholds that
// when the cron endpoint and the interval worker could otherwise overlap.
type RefreshGuard struct {
	redis *RedisClient
}

// NewRefreshGuard creates a new RefreshGuard.
func NewRefreshGuard(redis *RedisClient) *RefreshGuard {
	return &RefreshGuard{redis: redis}
}

// TryLock attempts to take the refresh lock, reporting whether it was
// acquired.
func (g *RefreshGuard) TryLock(ctx context.Context) (bool, error) {
	return g.redis.SetNX(ctx, refreshLockKey, "1", lockTTL)
}

// Unlock releases the refresh lock.
func (g *RefreshGuard) Unlock(ctx context.Context) error {
	return g.redis.Delete(ctx, refreshLockKey)
}

// SetLastRun stores the outcome of a finished run.
func (g *RefreshGuard) SetLastRun(ctx context.Context, status *RefreshStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh status: %w", err)
	}
	return g.redis.Set(ctx, refreshStatusKey, string(data), statusTTL)
}

// LastRun returns the last recorded run, or nil when none is stored.
func (g *RefreshGuard) LastRun(ctx context.Context) (*RefreshStatus, error) {
	data, err := g.redis.Get(ctx, refreshStatusKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var status RefreshStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh status: %w", err)
	}
	return &status, nil
}
