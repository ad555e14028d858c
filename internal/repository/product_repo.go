package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cheapram/cheapram-api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByExternalID returns the product owned by a retailer under the source
// system's id. Returns sql.ErrNoRows when the pair is unknown.
func (r *ProductRepository) GetByExternalID(ctx context.Context, retailerID int, externalID string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE retailer_id = $1 AND external_id = $2 LIMIT 1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, retailerID, externalID); err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert creates a new product from a normalized listing. The generated id is
// deliberately not returned; callers re-read by (retailer_id, external_id).
func (r *ProductRepository) Insert(ctx context.Context, l *models.NormalizedListing, seenAt time.Time) error {
	const q = `
        INSERT INTO products (retailer_id, external_id, name, capacity_gb, speed_mhz,
                              ddr_type, form_factor, product_url, image_url, last_seen_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, q,
		l.RetailerID,
		l.ExternalID,
		l.Name,
		l.CapacityGB,
		l.SpeedMHz,
		l.DDRType,
		l.FormFactor,
		l.ProductURL,
		l.ImageURL,
		seenAt,
	)
	return err
}

// UpdateObserved overwrites a product's descriptive fields with the latest
// observation. Values are replaced wholesale, not merged: a listing that
// dropped its image drops it here too.
func (r *ProductRepository) UpdateObserved(ctx context.Context, id int, l *models.NormalizedListing, seenAt time.Time) error {
	const q = `
        UPDATE products
        SET name = $2, capacity_gb = $3, speed_mhz = $4, ddr_type = $5,
            form_factor = $6, product_url = $7, image_url = $8, last_seen_at = $9
        WHERE id = $1`

	_, err := r.db.ExecContext(ctx, q,
		id,
		l.Name,
		l.CapacityGB,
		l.SpeedMHz,
		l.DDRType,
		l.FormFactor,
		l.ProductURL,
		l.ImageURL,
		seenAt,
	)
	return err
}

// DistinctCapacities returns the known capacities in ascending order, for
// the filters endpoint.
func (r *ProductRepository) DistinctCapacities(ctx context.Context) ([]int, error) {
	const q = `SELECT DISTINCT capacity_gb FROM products WHERE capacity_gb IS NOT NULL ORDER BY capacity_gb`

	capacities := make([]int, 0)
	if err := r.db.SelectContext(ctx, &capacities, q); err != nil {
		return nil, err
	}
	return capacities, nil
}
