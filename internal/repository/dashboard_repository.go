package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// DashboardRepository aggregates the counts behind role landing pages.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// AdminCounts returns the admin landing page counts for one session.
func (r *DashboardRepository) AdminCounts(ctx context.Context, yearID int64) (*models.AdminDashboard, error) {
	const query = `SELECT
            (SELECT COUNT(*) FROM classes WHERE academic_year_id = $1) AS total_classes,
            (SELECT COUNT(*) FROM student_enrollments WHERE academic_year_id = $1 AND status = 'active') AS total_students,
            (SELECT COUNT(*) FROM users WHERE role = 'teacher' AND status = 'active') AS total_teachers,
            (SELECT COUNT(*) FROM subjects WHERE academic_year_id = $1) AS total_subjects`
	var dashboard models.AdminDashboard
	if err := r.db.GetContext(ctx, &dashboard, query, yearID); err != nil {
		return nil, fmt.Errorf("admin dashboard counts: %w", err)
	}
	return &dashboard, nil
}

// TeacherClasses returns the teacher's active-year roster, combining
// homeroom classes with classes where the teacher takes a subject.
func (r *DashboardRepository) TeacherClasses(ctx context.Context, teacherID int64) ([]models.TeacherClass, error) {
	const query = `SELECT DISTINCT c.class_id, c.class_level, c.division, ay.year_name,
            (SELECT COUNT(*) FROM student_enrollments se
             WHERE se.class_id = c.class_id AND se.status = 'active') AS student_count
        FROM classes c
        JOIN academic_years ay ON ay.academic_year_id = c.academic_year_id
        LEFT JOIN subjects s ON s.class_id = c.class_id
        WHERE ay.is_active = TRUE
          AND (c.class_teacher_id = $1 OR s.teacher_id = $1)
        ORDER BY c.class_level, c.division`
	var classes []models.TeacherClass
	if err := r.db.SelectContext(ctx, &classes, query, teacherID); err != nil {
		return nil, fmt.Errorf("teacher classes: %w", err)
	}
	return classes, nil
}

// ClassRoster returns the active students of one class for teacher views.
func (r *DashboardRepository) ClassRoster(ctx context.Context, classID int64) ([]models.ClassStudent, error) {
	const query = `SELECT se.enrollment_id, se.roll_no, sm.student_master_id, sm.fname, sm.lname, sm.gender, sm.reg_no
        FROM student_enrollments se
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        WHERE se.class_id = $1 AND se.status = 'active'
        ORDER BY se.roll_no`
	var roster []models.ClassStudent
	if err := r.db.SelectContext(ctx, &roster, query, classID); err != nil {
		return nil, fmt.Errorf("class roster: %w", err)
	}
	return roster, nil
}

// StudentSummary returns the student's landing page summary with
// attendance counts folded in.
func (r *DashboardRepository) StudentSummary(ctx context.Context, userID int64) (*models.StudentDashboard, error) {
	const query = `SELECT se.enrollment_id, se.roll_no, c.class_level, c.division, ay.year_name,
            CASE WHEN c.class_teacher_id IS NULL THEN NULL
                 ELSE e.fname || ' ' || COALESCE(e.lname, '') END AS class_teacher,
            (SELECT COUNT(*) FROM attendance_students a
             WHERE a.enrollment_id = se.enrollment_id) AS total_days,
            (SELECT COUNT(*) FROM attendance_students a
             WHERE a.enrollment_id = se.enrollment_id AND a.status = 'Present') AS present_days
        FROM student_enrollments se
        JOIN classes c ON c.class_id = se.class_id
        JOIN academic_years ay ON ay.academic_year_id = se.academic_year_id
        LEFT JOIN employees e ON e.employee_id = c.class_teacher_id
        WHERE se.user_id = $1 AND ay.is_active = TRUE`
	var dashboard models.StudentDashboard
	if err := r.db.GetContext(ctx, &dashboard, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("student dashboard: %w", err)
	}
	return &dashboard, nil
}
