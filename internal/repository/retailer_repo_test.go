package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestEnsureRetailerInsertsOnce(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRetailerRepository(db)

	// First call: unknown domain, inserts and returns the generated id.
	mock.ExpectQuery(`SELECT id FROM retailers WHERE domain`).
		WithArgs("newegg.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO retailers`).
		WithArgs("Newegg", "newegg.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	id, err := repo.EnsureRetailer(context.Background(), "Newegg", "newegg.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	// Second call with a different name: existing row wins, no insert.
	mock.ExpectQuery(`SELECT id FROM retailers WHERE domain`).
		WithArgs("newegg.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	id, err = repo.EnsureRetailer(context.Background(), "Newegg Inc", "newegg.com", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllRetailers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRetailerRepository(db)

	mock.ExpectQuery(`SELECT id, name FROM retailers ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Amazon").
			AddRow(2, "Newegg"))

	retailers, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, retailers, 2)
	assert.Equal(t, "Amazon", retailers[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
