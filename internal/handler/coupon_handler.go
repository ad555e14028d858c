package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cheapram/cheapram-api/internal/repository"
	"github.com/cheapram/cheapram-api/internal/utils"
)

// CouponHandler serves coupon lookups for the storefront.
type CouponHandler struct {
	coupons *repository.CouponRepository
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(coupons *repository.CouponRepository) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// GetByRetailer handles GET /v1/coupons?retailer=<id>.
func (h *CouponHandler) GetByRetailer(c *gin.Context) {
	retailerID, err := strconv.Atoi(c.Query("retailer"))
	if err != nil || retailerID <= 0 {
		utils.Error(c, http.StatusBadRequest, "INVALID_RETAILER", "retailer must be a positive integer")
		return
	}

	coupons, err := h.coupons.GetForRetailer(c.Request.Context(), retailerID)
	if err != nil {
		log.Error().Err(err).Int("retailer_id", retailerID).Msg("failed to load coupons")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load coupons")
		return
	}

	utils.Success(c, http.StatusOK, "Coupons retrieved", coupons)
}
