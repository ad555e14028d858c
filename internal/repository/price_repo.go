package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cheapram/cheapram-api/internal/models"
)

// PriceRepository handles data access for price observations.
type PriceRepository struct {
	db *sqlx.DB
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Insert appends one price observation for a product. The table is
// append-only; identical re-observations still insert a new row so the
// history records every refresh cycle.
func (r *PriceRepository) Insert(ctx context.Context, productID, priceCents int, currency string, recordedAt time.Time) error {
	const q = `INSERT INTO prices (product_id, price_cents, currency, recorded_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, q, productID, priceCents, currency, recordedAt)
	return err
}

// HistoryForProduct returns a product's price observations, newest first.
func (r *PriceRepository) HistoryForProduct(ctx context.Context, productID int) ([]models.Price, error) {
	const q = `SELECT * FROM prices WHERE product_id = $1 ORDER BY recorded_at DESC, id DESC`

	history := make([]models.Price, 0)
	if err := r.db.SelectContext(ctx, &history, q, productID); err != nil {
		return nil, err
	}
	return history, nil
}
