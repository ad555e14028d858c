package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheapram/cheapram-api/internal/config"
	"github.com/cheapram/cheapram-api/internal/models"
	"github.com/cheapram/cheapram-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func newIngestService(db *sqlx.DB) *IngestService {
	return NewIngestService(
		&config.Config{},
		repository.NewRetailerRepository(db),
		repository.NewProductRepository(db),
		repository.NewPriceRepository(db),
		nil,
	)
}

func productRow(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "retailer_id", "external_id", "name", "capacity_gb", "speed_mhz",
		"ddr_type", "form_factor", "product_url", "image_url", "last_seen_at",
	}).AddRow(id, 1, "ext-1", "Corsair 32GB DDR5", 32, nil, "DDR5", "DIMM", "http://x/1", nil, nil)
}

func TestUpsertListingsInsertsThenAppends(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newIngestService(db)

	listing := models.NormalizedListing{
		RetailerID: 1,
		ExternalID: "ext-1",
		Name:       "Corsair 32GB DDR5",
		ProductURL: "http://x/1",
		PriceCents: 9999,
		Currency:   "USD",
	}

	// First observation: unknown pair, product insert, re-read for id, price
	// append.
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
		WithArgs(1, "ext-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO products`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
		WithArgs(1, "ext-1").
		WillReturnRows(productRow(42))
	mock.ExpectExec(`INSERT INTO prices`).
		WithArgs(42, 9999, "USD", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpsertListings(context.Background(), []models.NormalizedListing{listing}))

	// Second observation of the same pair: fields overwritten, one more price
	// row, no new product.
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
		WithArgs(1, "ext-1").
		WillReturnRows(productRow(42))
	mock.ExpectExec(`UPDATE products`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO prices`).
		WithArgs(42, 9999, "USD", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpsertListings(context.Background(), []models.NormalizedListing{listing}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertListingsAbortsOnWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newIngestService(db)

	listings := []models.NormalizedListing{
		{RetailerID: 1, ExternalID: "ext-1", Name: "A", ProductURL: "http://x/1", PriceCents: 100, Currency: "USD"},
		{RetailerID: 1, ExternalID: "ext-2", Name: "B", ProductURL: "http://x/2", PriceCents: 200, Currency: "USD"},
	}

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
		WithArgs(1, "ext-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO products`).
		WillReturnError(errors.New("disk full"))

	err := svc.UpsertListings(context.Background(), listings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ext-1")

	// The second listing was never attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllUsesMockSourceWithoutRealFeeds(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newIngestService(db)

	mock.ExpectQuery(`SELECT id FROM retailers WHERE domain`).
		WithArgs("demo.cheapram.local").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Five mock listings, each unknown on first run.
	for i := 0; i < 5; i++ {
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(`INSERT INTO products`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE retailer_id`).
			WillReturnRows(productRow(i + 1))
		mock.ExpectExec(`INSERT INTO prices`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	results := svc.RunAll(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "mock", results[0].Source)
	assert.Equal(t, 5, results[0].Listings)
	assert.Empty(t, results[0].Error)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunAllReportsSourceFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newIngestService(db)

	mock.ExpectQuery(`SELECT id FROM retailers WHERE domain`).
		WithArgs("demo.cheapram.local").
		WillReturnError(errors.New("connection refused"))

	results := svc.RunAll(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, "mock", results[0].Source)
	assert.Contains(t, results[0].Error, "connection refused")
}
