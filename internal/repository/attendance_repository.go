package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// AttendanceRepository persists daily attendance marks.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ReplaceForDate re-marks the listed enrollments for one date: prior rows
// for those enrollments on that date are deleted, then the new marks are
// inserted, all in one transaction. Marking twice is idempotent.
func (r *AttendanceRepository) ReplaceForDate(ctx context.Context, date time.Time, entries []models.AttendanceEntry) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attendance transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EnrollmentID)
	}
	deleteQuery, args, err := sqlx.In(
		`DELETE FROM attendance_students WHERE attendance_date = ? AND enrollment_id IN (?)`, date, ids)
	if err != nil {
		return fmt.Errorf("build attendance delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(deleteQuery), args...); err != nil {
		return fmt.Errorf("clear prior attendance: %w", err)
	}

	const insertQuery = `INSERT INTO attendance_students (enrollment_id, attendance_date, status)
        VALUES ($1, $2, $3)`
	for _, e := range entries {
		if _, err = tx.ExecContext(ctx, insertQuery, e.EnrollmentID, date, e.Status); err != nil {
			return fmt.Errorf("insert attendance mark: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance: %w", err)
	}
	return nil
}

// ClassRegister returns the class's marks for one date, joined with
// student names for the register view.
func (r *AttendanceRepository) ClassRegister(ctx context.Context, classID int64, date time.Time) ([]models.ClassAttendanceRow, error) {
	const query = `SELECT a.attendance_id, a.enrollment_id, a.status, sm.fname, sm.lname, se.roll_no
        FROM attendance_students a
        JOIN student_enrollments se ON se.enrollment_id = a.enrollment_id
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        WHERE se.class_id = $1 AND a.attendance_date = $2
        ORDER BY se.roll_no`
	var rows []models.ClassAttendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, classID, date); err != nil {
		return nil, fmt.Errorf("class attendance register: %w", err)
	}
	return rows, nil
}

// MonthRecords returns one enrollment's marks within a month, oldest
// first. Month is addressed by its first day.
func (r *AttendanceRepository) MonthRecords(ctx context.Context, enrollmentID int64, monthStart time.Time) ([]models.AttendanceRecord, error) {
	const query = `SELECT attendance_id, enrollment_id, attendance_date, status
        FROM attendance_students
        WHERE enrollment_id = $1
          AND attendance_date >= $2
          AND attendance_date < $2::date + INTERVAL '1 month'
        ORDER BY attendance_date`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, enrollmentID, monthStart); err != nil {
		return nil, fmt.Errorf("monthly attendance: %w", err)
	}
	return records, nil
}

// Totals returns the enrollment's all-time day counts.
func (r *AttendanceRepository) Totals(ctx context.Context, enrollmentID int64) (total, present int, err error) {
	const query = `SELECT COUNT(*) AS total,
            COUNT(*) FILTER (WHERE status = $2) AS present
        FROM attendance_students WHERE enrollment_id = $1`
	row := struct {
		Total   int `db:"total"`
		Present int `db:"present"`
	}{}
	if err := r.db.GetContext(ctx, &row, query, enrollmentID, models.AttendancePresent); err != nil {
		return 0, 0, fmt.Errorf("attendance totals: %w", err)
	}
	return row.Total, row.Present, nil
}
