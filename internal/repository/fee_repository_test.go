package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
)

func TestFeeRepositoryStatusByEnrollment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	rows := sqlmock.NewRows([]string{"total_amount", "paid", "pending"}).
		AddRow(5000.0, 3500.0, 1500.0)
	mock.ExpectQuery("FROM student_fee_assignments sfa").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	status, err := repo.StatusByEnrollment(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 5000.0, status.TotalAmount)
	require.Equal(t, 3500.0, status.Paid)
	require.Equal(t, 1500.0, status.Pending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryStatusByEnrollmentMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectQuery("FROM student_fee_assignments sfa").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"total_amount", "paid", "pending"}))

	_, err := repo.StatusByEnrollment(context.Background(), 404)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryInsertPayment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO fee_payments").
		WithArgs(int64(7), 1500.0, date, "cash", "RCPT-abc").
		WillReturnRows(sqlmock.NewRows([]string{"payment_id"}).AddRow(31))

	paymentID, err := repo.InsertPayment(context.Background(), 7, 1500.0, date, "cash", "RCPT-abc")
	require.NoError(t, err)
	require.Equal(t, int64(31), paymentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryBulkAssignClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec("INSERT INTO student_fee_assignments").
		WithArgs(int64(3), int64(1), sqlmock.AnyArg(), models.EnrollmentStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 28))

	assigned, err := repo.BulkAssignClass(context.Background(), 3, 1)
	require.NoError(t, err)
	require.Equal(t, 28, assigned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryUpsertStructureIsIdempotent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fee_structures")).
		WithArgs(5, int64(1), 6000.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertStructure(context.Background(), &models.UpsertFeeStructureRequest{
		ClassLevel:     5,
		AcademicYearID: 1,
		TotalAmount:    6000,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
