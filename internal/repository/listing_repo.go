package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// ListingRow is one product × retailer × price join row.
type ListingRow struct {
	ProductID      int     `db:"product_id"`
	RetailerID     int     `db:"retailer_id"`
	Name           string  `db:"name"`
	CapacityGB     *int    `db:"capacity_gb"`
	SpeedMHz       *int    `db:"speed_mhz"`
	DDRType        *string `db:"ddr_type"`
	FormFactor     *string `db:"form_factor"`
	ProductURL     string  `db:"product_url"`
	ImageURL       *string `db:"image_url"`
	PriceCents     int     `db:"price_cents"`
	Currency       *string `db:"currency"`
	RetailerName   string  `db:"retailer_name"`
	RetailerDomain string  `db:"retailer_domain"`
}

// ListingRepository reads the joined listing view.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// GetJoined returns every price row joined to its product and retailer,
// newest observation first. Latest-price selection happens in the service by
// keeping the first row seen per product, so ties on recorded_at resolve the
// same way on every read.
func (r *ListingRepository) GetJoined(ctx context.Context) ([]ListingRow, error) {
	const q = `
        SELECT p.id AS product_id, p.retailer_id, p.name, p.capacity_gb, p.speed_mhz,
               p.ddr_type, p.form_factor, p.product_url, p.image_url,
               pr.price_cents, pr.currency,
               rt.name AS retailer_name, rt.domain AS retailer_domain
        FROM products p
        JOIN retailers rt ON rt.id = p.retailer_id
        JOIN prices pr ON pr.product_id = p.id
        ORDER BY pr.recorded_at DESC, pr.id DESC`

	var rows []ListingRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}
