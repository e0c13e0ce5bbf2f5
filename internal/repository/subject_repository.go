package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// SubjectRepository persists subjects and their teacher assignments.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create adds a subject to a class for a session.
func (r *SubjectRepository) Create(ctx context.Context, req *models.CreateSubjectRequest) (int64, error) {
	const query = `INSERT INTO subjects (subject_name, class_id, teacher_id, academic_year_id)
        VALUES ($1, $2, $3, $4) RETURNING subject_id`
	var subjectID int64
	if err := r.db.GetContext(ctx, &subjectID, query,
		req.SubjectName, req.ClassID, req.TeacherID, req.AcademicYearID); err != nil {
		return 0, fmt.Errorf("create subject: %w", mapConstraintError(err))
	}
	return subjectID, nil
}

// FindByID returns one subject.
func (r *SubjectRepository) FindByID(ctx context.Context, subjectID int64) (*models.Subject, error) {
	const query = `SELECT subject_id, subject_name, class_id, teacher_id, academic_year_id
        FROM subjects WHERE subject_id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Info returns the detail view of a subject with class and teacher names.
func (r *SubjectRepository) Info(ctx context.Context, subjectID int64) (*models.SubjectInfo, error) {
	const query = `SELECT s.subject_name, c.class_level, c.division,
            e.fname || ' ' || COALESCE(e.lname, '') AS teacher
        FROM subjects s
        JOIN classes c ON c.class_id = s.class_id
        JOIN employees e ON e.employee_id = s.teacher_id
        WHERE s.subject_id = $1`
	var info models.SubjectInfo
	if err := r.db.GetContext(ctx, &info, query, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("subject info: %w", err)
	}
	return &info, nil
}

// ListByClass returns all subjects of a class with teacher names.
func (r *SubjectRepository) ListByClass(ctx context.Context, classID int64) ([]models.SubjectWithTeacher, error) {
	const query = `SELECT s.subject_id, s.subject_name, s.class_id, s.teacher_id, s.academic_year_id,
            e.fname || ' ' || COALESCE(e.lname, '') AS teacher
        FROM subjects s
        JOIN employees e ON e.employee_id = s.teacher_id
        WHERE s.class_id = $1
        ORDER BY s.subject_name`
	var subjects []models.SubjectWithTeacher
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list subjects by class: %w", err)
	}
	return subjects, nil
}

// ListByTeacher returns the teacher's subjects in the active session.
func (r *SubjectRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubject, error) {
	const query = `SELECT s.subject_id, s.subject_name, s.class_id, c.class_level, c.division, ay.year_name
        FROM subjects s
        JOIN classes c ON c.class_id = s.class_id
        JOIN academic_years ay ON ay.academic_year_id = s.academic_year_id
        WHERE s.teacher_id = $1 AND ay.is_active = TRUE
        ORDER BY c.class_level, c.division, s.subject_name`
	var subjects []models.TeacherSubject
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list subjects by teacher: %w", err)
	}
	return subjects, nil
}

// ChangeTeacher reassigns a subject to another teacher.
func (r *SubjectRepository) ChangeTeacher(ctx context.Context, subjectID, teacherID int64) error {
	const query = `UPDATE subjects SET teacher_id = $2 WHERE subject_id = $1`
	res, err := r.db.ExecContext(ctx, query, subjectID, teacherID)
	if err != nil {
		return fmt.Errorf("change subject teacher: %w", err)
	}
	return requireRows(res)
}

// TaughtBy reports whether the teacher owns the subject. Used by the
// teacher portal before accepting marks.
func (r *SubjectRepository) TaughtBy(ctx context.Context, subjectID, teacherID int64) (bool, error) {
	const query = `SELECT 1 FROM subjects WHERE subject_id = $1 AND teacher_id = $2`
	var one int
	if err := r.db.GetContext(ctx, &one, query, subjectID, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject teacher: %w", err)
	}
	return true, nil
}

// CountByYear returns the number of subjects in a session.
func (r *SubjectRepository) CountByYear(ctx context.Context, yearID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM subjects WHERE academic_year_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, yearID); err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	return count, nil
}
