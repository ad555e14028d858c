package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/models"
	"github.com/cheapram/cheapram-api/internal/service"
	"github.com/cheapram/cheapram-api/internal/utils"
)

// ListingHandler serves the storefront listing endpoints.
type ListingHandler struct {
	listings *service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// GetListings handles GET /v1/ram. It returns a bare JSON array; the
// storefront renders whatever arrives, so failures degrade to an empty
// array instead of an error payload.
func (h *ListingHandler) GetListings(c *gin.Context) {
	filter := service.ListingFilter{Sort: "price"}

	if raw := c.Query("capacity"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.Capacity = &v
		}
	}
	if t := normalizeDDRType(c.Query("type")); t != "" {
		filter.DDRType = &t
	}
	if f := normalizeFormFactor(c.Query("form")); f != "" {
		filter.FormFactor = &f
	}
	if raw := c.Query("retailer"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.RetailerID = &v
		}
	}
	if c.Query("sort") == "newest" {
		filter.Sort = "newest"
	}

	listings, err := h.listings.GetListings(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load listings")
		c.JSON(http.StatusOK, []models.RAMListing{})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetFilters handles GET /v1/filters.
func (h *ListingHandler) GetFilters(c *gin.Context) {
	filters, err := h.listings.GetFilters(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load filter options")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load filter options")
		return
	}
	c.JSON(http.StatusOK, filters)
}

// GetCheapest handles GET /v1/ram/cheapest. Same bare-array contract as the
// listing endpoint.
func (h *ListingHandler) GetCheapest(c *gin.Context) {
	best, err := h.listings.GetCheapestByCapacity(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load cheapest-by-capacity")
		c.JSON(http.StatusOK, []models.CapacityBest{})
		return
	}
	c.JSON(http.StatusOK, best)
}

// normalizeDDRType maps a query value onto the known generation tags,
// tolerating case. Unknown values are treated as no filter.
func normalizeDDRType(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case models.DDRTypeDDR4:
		return models.DDRTypeDDR4
	case models.DDRTypeDDR5:
		return models.DDRTypeDDR5
	}
	return ""
}

func normalizeFormFactor(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case models.FormFactorDIMM:
		return models.FormFactorDIMM
	case models.FormFactorSODIMM:
		return models.FormFactorSODIMM
	}
	return ""
}
