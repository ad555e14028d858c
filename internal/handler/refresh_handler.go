package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/cache"
	"github.com/cheapram/cheapram-api/internal/service"
	"github.com/cheapram/cheapram-api/internal/utils"
)

// RefreshHandler exposes the feed refresh trigger and its status.
type RefreshHandler struct {
	ingest *service.IngestService
	guard  *cache.RefreshGuard
}

// NewRefreshHandler creates a new RefreshHandler. guard may be nil when
// redis is unavailable; status reads then report no history.
func NewRefreshHandler(ingest *service.IngestService, guard *cache.RefreshGuard) *RefreshHandler {
	return &RefreshHandler{ingest: ingest, guard: guard}
}

// Trigger handles POST /v1/refresh. The run executes synchronously so the
// caller (typically a cron job) sees per-source outcomes in the response.
func (h *RefreshHandler) Trigger(c *gin.Context) {
	results, err := h.ingest.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrRefreshInProgress) {
			utils.Error(c, http.StatusConflict, "REFRESH_IN_PROGRESS", "A refresh run is already in progress")
			return
		}
		log.Error().Err(err).Msg("refresh run failed")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Refresh run failed")
		return
	}

	utils.Success(c, http.StatusOK, "Refresh completed", gin.H{"sources": results})
}

// Status handles GET /v1/refresh/status.
func (h *RefreshHandler) Status(c *gin.Context) {
	if h.guard == nil {
		utils.Success(c, http.StatusOK, "No refresh history available", nil)
		return
	}

	status, err := h.guard.LastRun(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to read refresh status")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read refresh status")
		return
	}
	if status == nil {
		utils.Success(c, http.StatusOK, "No refresh has run yet", nil)
		return
	}

	utils.Success(c, http.StatusOK, "Last refresh run", status)
}
