package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// ClassRepository handles persistence of classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a class scoped to one academic year.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (class_level, division, academic_year_id)
        VALUES ($1, $2, $3) RETURNING class_id`
	if err := r.db.GetContext(ctx, &class.ID, query, class.ClassLevel, class.Division, class.AcademicYearID); err != nil {
		return fmt.Errorf("create class: %w", mapConstraintError(err))
	}
	return nil
}

// FindByID returns one class.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	const query = `SELECT class_id, class_level, division, academic_year_id, class_teacher_id
        FROM classes WHERE class_id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// FindByYearAndLevel locates the class at a level within a session.
// Promotion uses this to resolve the destination class.
func (r *ClassRepository) FindByYearAndLevel(ctx context.Context, yearID int64, level int) (*models.Class, error) {
	const query = `SELECT class_id, class_level, division, academic_year_id, class_teacher_id
        FROM classes WHERE academic_year_id = $1 AND class_level = $2
        ORDER BY division LIMIT 1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, yearID, level); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by year and level: %w", err)
	}
	return &class, nil
}

// ListByYear returns all classes of a session with the homeroom teacher
// name and headcount attached.
func (r *ClassRepository) ListByYear(ctx context.Context, yearID int64) ([]models.ClassSummary, error) {
	const query = `SELECT c.class_id, c.class_level, c.division, c.academic_year_id, c.class_teacher_id,
            CASE WHEN c.class_teacher_id IS NULL THEN NULL
                 ELSE e.fname || ' ' || COALESCE(e.lname, '') END AS class_teacher,
            COUNT(se.enrollment_id) AS total_students
        FROM classes c
        LEFT JOIN employees e ON c.class_teacher_id = e.employee_id
        LEFT JOIN student_enrollments se ON se.class_id = c.class_id
        WHERE c.academic_year_id = $1
        GROUP BY c.class_id, e.fname, e.lname
        ORDER BY c.class_level, c.division`
	var classes []models.ClassSummary
	if err := r.db.SelectContext(ctx, &classes, query, yearID); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// Profile returns the full class view including teacher and headcount.
func (r *ClassRepository) Profile(ctx context.Context, id int64) (*models.ClassSummary, error) {
	const query = `SELECT c.class_id, c.class_level, c.division, c.academic_year_id, c.class_teacher_id,
            CASE WHEN c.class_teacher_id IS NULL THEN NULL
                 ELSE e.fname || ' ' || COALESCE(e.lname, '') END AS class_teacher,
            COUNT(se.enrollment_id) AS total_students
        FROM classes c
        LEFT JOIN employees e ON c.class_teacher_id = e.employee_id
        LEFT JOIN student_enrollments se ON se.class_id = c.class_id
        WHERE c.class_id = $1
        GROUP BY c.class_id, e.fname, e.lname`
	var profile models.ClassSummary
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("class profile: %w", err)
	}
	return &profile, nil
}

// AssignTeacher binds a homeroom teacher to a class.
func (r *ClassRepository) AssignTeacher(ctx context.Context, classID, teacherID int64) error {
	const query = `UPDATE classes SET class_teacher_id = $2 WHERE class_id = $1`
	res, err := r.db.ExecContext(ctx, query, classID, teacherID)
	if err != nil {
		return fmt.Errorf("assign class teacher: %w", err)
	}
	return requireRows(res)
}

// DivisionCounts aggregates enrollment headcount per level and division.
func (r *ClassRepository) DivisionCounts(ctx context.Context, yearID int64) ([]models.DivisionCount, error) {
	const query = `SELECT c.class_level, c.division, COUNT(se.enrollment_id) AS total_students
        FROM classes c
        LEFT JOIN student_enrollments se ON se.class_id = c.class_id
        WHERE c.academic_year_id = $1
        GROUP BY c.class_level, c.division
        ORDER BY c.class_level, c.division`
	var counts []models.DivisionCount
	if err := r.db.SelectContext(ctx, &counts, query, yearID); err != nil {
		return nil, fmt.Errorf("division counts: %w", err)
	}
	return counts, nil
}
