package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEnrollmentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"enrollment_id", "student_master_id", "user_id", "academic_year_id", "class_id", "roll_no", "admission_date", "status"}).
		AddRow(7, 3, 12, 1, 5, 14, time.Now(), "active")
	mock.ExpectQuery(regexp.QuoteMeta("FROM student_enrollments WHERE enrollment_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	enrollment, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, models.EnrollmentStatusActive, enrollment.Status)
	require.Equal(t, 14, enrollment.RollNo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCountPromotedByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("status IN ($2, $3)")).
		WithArgs(int64(5), models.EnrollmentStatusPromoted, models.EnrollmentStatusPassed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountPromotedByClass(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryToggleStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("UPDATE student_enrollments").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ToggleStatus(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryToggleStatusMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("UPDATE student_enrollments").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ToggleStatus(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryChangeClassRollCrossYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	// Target class is in another year, so the join updates nothing.
	mock.ExpectExec("UPDATE student_enrollments se").
		WithArgs(int64(7), int64(3), 12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ChangeClassRoll(context.Background(), 7, 3, 12)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryGraduateClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("UPDATE student_enrollments SET status").
		WithArgs(int64(5), models.EnrollmentStatusPassed, models.EnrollmentStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 18))

	graduated, err := repo.GraduateClass(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 18, graduated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryPromoteCohort(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)
	admission := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT student_master_id FROM student_enrollments").
		WithArgs(int64(5), models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"student_master_id"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM student_enrollments")).
		WithArgs(int64(2), int64(5), models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO student_enrollments").
		WithArgs(int64(2), int64(9), admission, models.EnrollmentStatusActive, int64(5), models.EnrollmentStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE student_enrollments SET status").
		WithArgs(int64(5), models.EnrollmentStatusPromoted, models.EnrollmentStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	promoted, err := repo.PromoteCohort(context.Background(), 5, 9, 2, admission)
	require.NoError(t, err)
	require.Equal(t, 3, promoted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryPromoteCohortAlreadyPromoted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT student_master_id FROM student_enrollments").
		WithArgs(int64(5), models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"student_master_id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM student_enrollments")).
		WithArgs(int64(2), int64(5), models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.PromoteCohort(context.Background(), 5, 9, 2, time.Now())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicate))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryPromoteCohortEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT student_master_id FROM student_enrollments").
		WithArgs(int64(5), models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"student_master_id"}))
	mock.ExpectRollback()

	_, err := repo.PromoteCohort(context.Background(), 5, 9, 2, time.Now())
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryRollTaken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT 1 FROM student_enrollments").
		WithArgs(int64(3), 12, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	taken, err := repo.RollTaken(context.Background(), 3, 12, 7)
	require.NoError(t, err)
	require.True(t, taken)

	mock.ExpectQuery("SELECT 1 FROM student_enrollments").
		WithArgs(int64(3), 13, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err = repo.RollTaken(context.Background(), 3, 13, 7)
	require.NoError(t, err)
	require.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}
