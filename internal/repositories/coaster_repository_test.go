package repositories

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

func newMockDB(t *testing.T) (sqlmock.Sqlmock, CoasterRepository, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return mock, CoasterRepository{DB: db}, func() { db.Close() }
}

func TestCoasterUpdate_OnlySentFieldsTouched(t *testing.T) {
	mock, repo, done := newMockDB(t)
	defer done()

	status := models.CoasterMaintenance
	mock.ExpectExec(`UPDATE coasters SET status=\?, updated_at=NOW\(\) WHERE id=\?`).
		WithArgs(status, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(4, models.CoasterUpdate{Status: &status}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCoasterUpdate_RejectsUnknownStatus(t *testing.T) {
	_, repo, done := newMockDB(t)
	defer done()

	bad := "parked"
	err := repo.Update(4, models.CoasterUpdate{Status: &bad})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCoasterUpdate_EmptyPatchRejected(t *testing.T) {
	_, repo, done := newMockDB(t)
	defer done()

	err := repo.Update(4, models.CoasterUpdate{})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error for empty patch, got %v", err)
	}
}

func TestCoasterDelete_BlockedByActiveOrders(t *testing.T) {
	mock, repo, done := newMockDB(t)
	defer done()

	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) FROM hire_orders.+coaster_id=\?`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := repo.Delete(4)
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCoasterUpdateLocation_RangeChecked(t *testing.T) {
	_, repo, done := newMockDB(t)
	defer done()

	if err := repo.UpdateLocation(4, 95.0, 39.2); !domain.IsValidation(err) {
		t.Fatalf("latitude out of range should fail, got %v", err)
	}
	if err := repo.UpdateLocation(4, -6.8, 200.0); !domain.IsValidation(err) {
		t.Fatalf("longitude out of range should fail, got %v", err)
	}
}
