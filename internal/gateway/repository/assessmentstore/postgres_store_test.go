package assessmentstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func expectSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS assessments").
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestPostgresStore_FindNotFound(t *testing.T) {
	store, mock := newPostgresStore(t)
	expectSchema(mock)
	mock.ExpectQuery("SELECT fingerprint, input, results, report, formatted, created_at, updated_at FROM assessments").
		WithArgs("fp-1").
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "input", "results", "report", "formatted", "created_at", "updated_at"}))

	_, err := store.Find(context.Background(), "fp-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindDecodesRecord(t *testing.T) {
	store, mock := newPostgresStore(t)
	rec := sampleRecord("fp-1")
	input, err := json.Marshal(rec.Input)
	require.NoError(t, err)
	results, err := json.Marshal(rec.Results)
	require.NoError(t, err)
	report, err := json.Marshal(rec.Report)
	require.NoError(t, err)

	now := time.Now()
	expectSchema(mock)
	mock.ExpectQuery("SELECT fingerprint, input, results, report, formatted, created_at, updated_at FROM assessments").
		WithArgs("fp-1").
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "input", "results", "report", "formatted", "created_at", "updated_at"}).
			AddRow("fp-1", input, results, report, rec.Formatted, now, now))

	got, err := store.Find(context.Background(), "fp-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Report, got.Report)
	assert.Equal(t, rec.Input, got.Input)
	assert.Equal(t, rec.Results, got.Results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveUpserts(t *testing.T) {
	store, mock := newPostgresStore(t)
	expectSchema(mock)
	mock.ExpectExec("INSERT INTO assessments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Save(context.Background(), sampleRecord("fp-1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveRequiresFingerprint(t *testing.T) {
	store, _ := newPostgresStore(t)
	rec := sampleRecord("")
	err := store.Save(context.Background(), rec)
	assert.ErrorContains(t, err, "fingerprint is required")
}
