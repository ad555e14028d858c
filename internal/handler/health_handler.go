package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/cheapram/cheapram-api/internal/cache"
	"github.com/cheapram/cheapram-api/internal/utils"
)

// HealthHandler reports service liveness and dependency health.
type HealthHandler struct {
	db        *sqlx.DB
	guard     *cache.RefreshGuard
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, guard *cache.RefreshGuard) *HealthHandler {
	return &HealthHandler{
		db:        db,
		guard:     guard,
		startTime: time.Now(),
	}
}

// Check handles GET /v1/health.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	dbStatus := "ok"
	healthy := true
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "unreachable"
		healthy = false
	}

	data := gin.H{
		"database": dbStatus,
		"uptime":   time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.guard != nil {
		if status, err := h.guard.LastRun(ctx); err == nil && status != nil {
			data["lastRefresh"] = status.FinishedAt
		}
	}

	if !healthy {
		utils.Error(c, http.StatusServiceUnavailable, "UNHEALTHY", "Database unreachable")
		return
	}
	utils.Success(c, http.StatusOK, "Service healthy", data)
}
