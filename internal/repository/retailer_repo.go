package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/cheapram/cheapram-api/internal/models"
)

// RetailerRepository handles data access for retailers.
type RetailerRepository struct {
	db *sqlx.DB
}

// NewRetailerRepository creates a new RetailerRepository.
func NewRetailerRepository(db *sqlx.DB) *RetailerRepository {
	return &RetailerRepository{db: db}
}

// EnsureRetailer returns the id for a domain, inserting a new row when the
// domain has not been seen before. Metadata on an existing row is left
// untouched: the first write wins, later calls with a different name or
// affiliate param do not update it.
func (r *RetailerRepository) EnsureRetailer(ctx context.Context, name, domain string, affiliateParam *string) (int, error) {
	var id int
	err := r.db.GetContext(ctx, &id, `SELECT id FROM retailers WHERE domain = $1`, domain)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = r.db.GetContext(ctx, &id,
		`INSERT INTO retailers (name, domain, affiliate_param) VALUES ($1, $2, $3) RETURNING id`,
		name, domain, affiliateParam)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetAll returns id/name options for every retailer.
func (r *RetailerRepository) GetAll(ctx context.Context) ([]models.RetailerOption, error) {
	var retailers []models.RetailerOption
	if err := r.db.SelectContext(ctx, &retailers, `SELECT id, name FROM retailers ORDER BY id`); err != nil {
		return nil, err
	}
	return retailers, nil
}
