package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/repository"
	"github.com/cheapram/cheapram-api/internal/utils"
)

// PriceHandler serves price history for the storefront's price chart.
type PriceHandler struct {
	prices *repository.PriceRepository
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(prices *repository.PriceRepository) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// GetHistory handles GET /v1/ram/:id/history.
func (h *PriceHandler) GetHistory(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		utils.Error(c, http.StatusBadRequest, "INVALID_PRODUCT", "product id must be a positive integer")
		return
	}

	history, err := h.prices.HistoryForProduct(c.Request.Context(), productID)
	if err != nil {
		log.Error().Err(err).Int("product_id", productID).Msg("failed to load price history")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load price history")
		return
	}

	c.JSON(http.StatusOK, history)
}
