package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"currency-converter/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsageRepo(t *testing.T) (*UsageRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUsageRepository(db), mock
}

func TestUsageRepository_Save(t *testing.T) {
	repo, mock := newUsageRepo(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("INSERT INTO conversion_events").
		WithArgs("client-1", "EUR", "USD", 100.0, 110.0, true, "", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), models.ConversionEvent{
		ClientID:  "client-1",
		From:      "EUR",
		To:        "USD",
		Amount:    100,
		Result:    110,
		OK:        true,
		CreatedAt: at,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageRepository_TopPairs(t *testing.T) {
	repo, mock := newUsageRepo(t)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"from_code", "to_code", "cnt"}).
		AddRow("EUR", "USD", 7).
		AddRow("USD", "VND", 3)
	mock.ExpectQuery("SELECT from_code, to_code, COUNT").
		WithArgs(since, 5).
		WillReturnRows(rows)

	pairs, err := repo.TopPairs(context.Background(), since, 5)
	require.NoError(t, err)
	assert.Equal(t, []models.PopularPair{
		{From: "EUR", To: "USD", Count: 7},
		{From: "USD", To: "VND", Count: 3},
	}, pairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsageRepository_TopPairsEmpty(t *testing.T) {
	repo, mock := newUsageRepo(t)

	mock.ExpectQuery("SELECT from_code, to_code, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"from_code", "to_code", "cnt"}))

	pairs, err := repo.TopPairs(context.Background(), time.Now(), 5)
	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}

func TestUsageRepository_TopPairsError(t *testing.T) {
	repo, mock := newUsageRepo(t)

	mock.ExpectQuery("SELECT from_code, to_code, COUNT").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.TopPairs(context.Background(), time.Now(), 5)
	assert.EqualError(t, err, "connection reset")
}

func TestUsageRepository_EnsureSchema(t *testing.T) {
	repo, mock := newUsageRepo(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS conversion_events").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
