package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/cheapram/cheapram-api/internal/models"
)

// CouponRepository handles read-only access to manually curated coupons.
type CouponRepository struct {
	db *sqlx.DB
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(db *sqlx.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// GetForProduct returns the coupon attached to a product, or nil when none
// exists. At most one coupon per product is surfaced.
func (r *CouponRepository) GetForProduct(ctx context.Context, productID int) (*models.Coupon, error) {
	const q = `SELECT * FROM coupons WHERE product_id = $1 LIMIT 1`

	var c models.Coupon
	if err := r.db.GetContext(ctx, &c, q, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetForRetailer returns every coupon scoped to a retailer.
func (r *CouponRepository) GetForRetailer(ctx context.Context, retailerID int) ([]models.Coupon, error) {
	const q = `SELECT * FROM coupons WHERE retailer_id = $1 ORDER BY id`

	coupons := make([]models.Coupon, 0)
	if err := r.db.SelectContext(ctx, &coupons, q, retailerID); err != nil {
		return nil, err
	}
	return coupons, nil
}
