package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// EnrollmentRepository handles persistence of student enrollments,
// including the transactional promotion workflow.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByID returns one enrollment.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = `SELECT enrollment_id, student_master_id, user_id, academic_year_id, class_id, roll_no, admission_date, status
        FROM student_enrollments WHERE enrollment_id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListByYear returns all enrollments of a session with student and class
// context, ordered the way registers are printed.
func (r *EnrollmentRepository) ListByYear(ctx context.Context, yearID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT se.enrollment_id, se.student_master_id, se.user_id, se.academic_year_id, se.class_id,
            se.roll_no, se.admission_date, se.status,
            sm.reg_no, sm.fname || ' ' || COALESCE(sm.lname, '') AS student_name,
            c.class_level, c.division
        FROM student_enrollments se
        JOIN student_master sm ON se.student_master_id = sm.student_master_id
        JOIN classes c ON se.class_id = c.class_id
        WHERE se.academic_year_id = $1
        ORDER BY c.class_level, c.division, se.roll_no`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, yearID); err != nil {
		return nil, fmt.Errorf("list enrollments by year: %w", err)
	}
	return enrollments, nil
}

// ListByClass returns the class register.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT se.enrollment_id, se.student_master_id, se.user_id, se.academic_year_id, se.class_id,
            se.roll_no, se.admission_date, se.status,
            sm.reg_no, sm.fname || ' ' || COALESCE(sm.lname, '') AS student_name,
            c.class_level, c.division
        FROM student_enrollments se
        JOIN student_master sm ON se.student_master_id = sm.student_master_id
        JOIN classes c ON se.class_id = c.class_id
        WHERE se.class_id = $1
        ORDER BY se.roll_no`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, classID); err != nil {
		return nil, fmt.Errorf("list enrollments by class: %w", err)
	}
	return enrollments, nil
}

// CountActiveByClass returns the number of active enrollments in a class.
func (r *EnrollmentRepository) CountActiveByClass(ctx context.Context, classID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM student_enrollments WHERE class_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID, models.EnrollmentStatusActive); err != nil {
		return 0, fmt.Errorf("count active enrollments: %w", err)
	}
	return count, nil
}

// CountPromotedByClass returns the number of enrollments in a class that
// already moved on, promoted to a later session or passed out.
func (r *EnrollmentRepository) CountPromotedByClass(ctx context.Context, classID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM student_enrollments WHERE class_id = $1 AND status IN ($2, $3)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, classID, models.EnrollmentStatusPromoted, models.EnrollmentStatusPassed); err != nil {
		return 0, fmt.Errorf("count promoted enrollments: %w", err)
	}
	return count, nil
}

// RollTaken reports whether another enrollment in the class already holds
// the roll number. The schema does not enforce this, so callers guard it.
func (r *EnrollmentRepository) RollTaken(ctx context.Context, classID int64, rollNo int, excludeID int64) (bool, error) {
	const query = `SELECT 1 FROM student_enrollments
        WHERE class_id = $1 AND roll_no = $2 AND enrollment_id <> $3 LIMIT 1`
	var one int
	if err := r.db.GetContext(ctx, &one, query, classID, rollNo, excludeID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check roll number: %w", err)
	}
	return true, nil
}

// ChangeClassRoll moves an enrollment to a class and roll number. The
// target class must belong to the enrollment's own academic year;
// cross-year moves silently corrupt history, so the UPDATE enforces the
// match itself.
func (r *EnrollmentRepository) ChangeClassRoll(ctx context.Context, enrollmentID, classID int64, rollNo int) error {
	const query = `UPDATE student_enrollments se
        SET class_id = $2, roll_no = $3
        FROM classes c
        WHERE se.enrollment_id = $1
          AND c.class_id = $2
          AND c.academic_year_id = se.academic_year_id`
	res, err := r.db.ExecContext(ctx, query, enrollmentID, classID, rollNo)
	if err != nil {
		return fmt.Errorf("change class roll: %w", err)
	}
	return requireRows(res)
}

// ToggleStatus flips an enrollment between active and inactive in a
// single conditional update. Calling it twice restores the original
// state. Zero rows affected is surfaced as sql.ErrNoRows.
func (r *EnrollmentRepository) ToggleStatus(ctx context.Context, enrollmentID int64) error {
	const query = `UPDATE student_enrollments
        SET status = CASE WHEN status = 'active' THEN 'inactive' ELSE 'active' END
        WHERE enrollment_id = $1`
	res, err := r.db.ExecContext(ctx, query, enrollmentID)
	if err != nil {
		return fmt.Errorf("toggle enrollment status: %w", err)
	}
	return requireRows(res)
}

// GraduateClass marks every active enrollment of a terminal class as
// passed. Returns the number of graduated students.
func (r *EnrollmentRepository) GraduateClass(ctx context.Context, classID int64) (int, error) {
	const query = `UPDATE student_enrollments SET status = $2
        WHERE class_id = $1 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, classID, models.EnrollmentStatusPassed, models.EnrollmentStatusActive)
	if err != nil {
		return 0, fmt.Errorf("graduate class: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("graduate class rows: %w", err)
	}
	return int(affected), nil
}

// PromoteCohort moves every active enrollment of the source class into
// the target class/year as one atomic batch:
//
//  1. lock the source cohort so a concurrent promotion serialises,
//  2. abort if any of those students already hold an enrollment in the
//     target year (double-promotion guard),
//  3. insert the new enrollments carrying roll numbers forward,
//  4. mark the source enrollments promoted.
//
// The student_enrollments table carries UNIQUE(student_master_id,
// academic_year_id), so a race that slips past the guard still fails the
// insert and rolls back in full; ErrDuplicate marks that outcome.
func (r *EnrollmentRepository) PromoteCohort(ctx context.Context, sourceClassID, targetClassID, targetYearID int64, admissionDate time.Time) (promoted int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin promotion transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var cohort []int64
	const lockQuery = `SELECT student_master_id FROM student_enrollments
        WHERE class_id = $1 AND status = $2 FOR UPDATE`
	if err = tx.SelectContext(ctx, &cohort, lockQuery, sourceClassID, models.EnrollmentStatusActive); err != nil {
		return 0, fmt.Errorf("lock source cohort: %w", err)
	}
	if len(cohort) == 0 {
		return 0, sql.ErrNoRows
	}

	var clash int
	const guardQuery = `SELECT COUNT(*) FROM student_enrollments
        WHERE academic_year_id = $1
          AND student_master_id IN (
              SELECT student_master_id FROM student_enrollments
              WHERE class_id = $2 AND status = $3)`
	if err = tx.GetContext(ctx, &clash, guardQuery, targetYearID, sourceClassID, models.EnrollmentStatusActive); err != nil {
		return 0, fmt.Errorf("double promotion guard: %w", err)
	}
	if clash > 0 {
		err = fmt.Errorf("%w: enrollment already present in target year", ErrDuplicate)
		return 0, err
	}

	const insertQuery = `INSERT INTO student_enrollments
            (student_master_id, user_id, academic_year_id, class_id, roll_no, admission_date, status)
        SELECT se.student_master_id, se.user_id, $1, $2, se.roll_no, $3, $4
        FROM student_enrollments se
        WHERE se.class_id = $5 AND se.status = $6`
	var res sql.Result
	res, err = tx.ExecContext(ctx, insertQuery,
		targetYearID, targetClassID, admissionDate,
		models.EnrollmentStatusActive, sourceClassID, models.EnrollmentStatusActive)
	if err != nil {
		err = mapConstraintError(err)
		return 0, fmt.Errorf("insert promoted enrollments: %w", err)
	}
	inserted, rowsErr := res.RowsAffected()
	if rowsErr != nil {
		err = rowsErr
		return 0, fmt.Errorf("promoted rows: %w", err)
	}

	const markQuery = `UPDATE student_enrollments SET status = $2
        WHERE class_id = $1 AND status = $3`
	if _, err = tx.ExecContext(ctx, markQuery, sourceClassID, models.EnrollmentStatusPromoted, models.EnrollmentStatusActive); err != nil {
		return 0, fmt.Errorf("mark source enrollments promoted: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit promotion: %w", err)
	}
	return int(inserted), nil
}

// CurrentByUserID returns the student's enrollment in the active session.
func (r *EnrollmentRepository) CurrentByUserID(ctx context.Context, userID int64) (*models.CurrentEnrollment, error) {
	const query = `SELECT se.enrollment_id, se.student_master_id, se.roll_no, se.admission_date,
            ay.academic_year_id, ay.year_name AS academic_year,
            c.class_id, c.class_level, c.division,
            CASE WHEN c.class_teacher_id IS NULL THEN NULL
                 ELSE e.fname || ' ' || COALESCE(e.lname, '') END AS class_teacher
        FROM student_enrollments se
        JOIN academic_years ay ON ay.academic_year_id = se.academic_year_id
        JOIN classes c ON c.class_id = se.class_id
        LEFT JOIN employees e ON e.employee_id = c.class_teacher_id
        WHERE se.user_id = $1 AND ay.is_active = TRUE`
	var current models.CurrentEnrollment
	if err := r.db.GetContext(ctx, &current, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("current enrollment: %w", err)
	}
	return &current, nil
}

// HistoryByUserID returns every year's enrollment for a student, newest
// session first. History rows survive promotion for transcripts.
func (r *EnrollmentRepository) HistoryByUserID(ctx context.Context, userID int64) ([]models.EnrollmentHistoryEntry, error) {
	const query = `SELECT se.enrollment_id, se.roll_no, c.class_level, c.division,
            ay.year_name, ay.is_active, ay.start_date, ay.end_date, se.status
        FROM student_enrollments se
        JOIN classes c ON c.class_id = se.class_id
        JOIN academic_years ay ON ay.academic_year_id = se.academic_year_id
        WHERE se.user_id = $1
        ORDER BY ay.start_date DESC`
	var history []models.EnrollmentHistoryEntry
	if err := r.db.SelectContext(ctx, &history, query, userID); err != nil {
		return nil, fmt.Errorf("enrollment history: %w", err)
	}
	return history, nil
}
