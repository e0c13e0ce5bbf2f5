package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// MarksRepository persists exams and per-subject marks.
type MarksRepository struct {
	db *sqlx.DB
}

// NewMarksRepository constructs the repository.
func NewMarksRepository(db *sqlx.DB) *MarksRepository {
	return &MarksRepository{db: db}
}

// GetOrCreateExam resolves an exam by name within a session, creating it
// on first use.
func (r *MarksRepository) GetOrCreateExam(ctx context.Context, examName string, yearID int64) (int64, error) {
	const findQuery = `SELECT exam_id FROM exams WHERE exam_name = $1 AND academic_year_id = $2`
	var examID int64
	err := r.db.GetContext(ctx, &examID, findQuery, examName, yearID)
	if err == nil {
		return examID, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("find exam: %w", err)
	}

	const insertQuery = `INSERT INTO exams (exam_name, academic_year_id)
        VALUES ($1, $2) RETURNING exam_id`
	if err := r.db.GetContext(ctx, &examID, insertQuery, examName, yearID); err != nil {
		return 0, fmt.Errorf("create exam: %w", mapConstraintError(err))
	}
	return examID, nil
}

// ReplaceMarks records scored marks for one subject and exam. Earlier
// rows for the same enrollment/subject/exam are replaced so re-entry
// corrects rather than duplicates.
func (r *MarksRepository) ReplaceMarks(ctx context.Context, subjectID, examID int64, marks []models.Mark) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin marks transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const deleteQuery = `DELETE FROM marks
        WHERE subject_id = $1 AND exam_id = $2 AND enrollment_id = $3`
	const insertQuery = `INSERT INTO marks (enrollment_id, subject_id, exam_id, marks_obtained, max_marks, grade)
        VALUES ($1, $2, $3, $4, $5, $6)`
	for _, m := range marks {
		if _, err = tx.ExecContext(ctx, deleteQuery, subjectID, examID, m.EnrollmentID); err != nil {
			return fmt.Errorf("clear prior marks: %w", err)
		}
		if _, err = tx.ExecContext(ctx, insertQuery,
			m.EnrollmentID, subjectID, examID, m.MarksObtained, m.MaxMarks, m.Grade); err != nil {
			return fmt.Errorf("insert mark: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit marks: %w", err)
	}
	return nil
}

// StudentMarks returns every scored subject/exam pair for an enrollment.
func (r *MarksRepository) StudentMarks(ctx context.Context, enrollmentID int64) ([]models.StudentMark, error) {
	const query = `SELECT s.subject_name, e.exam_name, m.marks_obtained, m.max_marks, m.grade
        FROM marks m
        JOIN subjects s ON s.subject_id = m.subject_id
        JOIN exams e ON e.exam_id = m.exam_id
        WHERE m.enrollment_id = $1
        ORDER BY e.exam_id, s.subject_name`
	var rows []models.StudentMark
	if err := r.db.SelectContext(ctx, &rows, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("student marks: %w", err)
	}
	return rows, nil
}

// ClassPerformance aggregates per-student totals for one class across all
// exams, ranked by percentage.
func (r *MarksRepository) ClassPerformance(ctx context.Context, classID int64) ([]models.PerformanceRow, error) {
	const query = `SELECT se.enrollment_id,
            sm.fname || ' ' || COALESCE(sm.lname, '') AS student_name,
            se.roll_no, sm.reg_no,
            COUNT(DISTINCT m.subject_id) AS total_subjects,
            SUM(m.marks_obtained) AS total_marks_obtained,
            SUM(m.max_marks) AS total_max_marks,
            ROUND(SUM(m.marks_obtained) * 100.0 / NULLIF(SUM(m.max_marks), 0), 2) AS percentage
        FROM student_enrollments se
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        LEFT JOIN marks m ON m.enrollment_id = se.enrollment_id
        WHERE se.class_id = $1
        GROUP BY se.enrollment_id, sm.fname, sm.lname, se.roll_no, sm.reg_no
        ORDER BY percentage DESC NULLS LAST, se.roll_no`
	var rows []models.PerformanceRow
	if err := r.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, fmt.Errorf("class performance: %w", err)
	}
	return rows, nil
}

// TopStudents returns the session's highest-percentage students.
func (r *MarksRepository) TopStudents(ctx context.Context, yearID int64, limit int) ([]models.PerformanceRow, error) {
	const query = `SELECT se.enrollment_id,
            sm.fname || ' ' || COALESCE(sm.lname, '') AS student_name,
            se.roll_no, sm.reg_no,
            COUNT(DISTINCT m.subject_id) AS total_subjects,
            SUM(m.marks_obtained) AS total_marks_obtained,
            SUM(m.max_marks) AS total_max_marks,
            ROUND(SUM(m.marks_obtained) * 100.0 / NULLIF(SUM(m.max_marks), 0), 2) AS percentage
        FROM student_enrollments se
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        JOIN marks m ON m.enrollment_id = se.enrollment_id
        WHERE se.academic_year_id = $1
        GROUP BY se.enrollment_id, sm.fname, sm.lname, se.roll_no, sm.reg_no
        HAVING SUM(m.max_marks) > 0
        ORDER BY percentage DESC
        LIMIT $2`
	var rows []models.PerformanceRow
	if err := r.db.SelectContext(ctx, &rows, query, yearID, limit); err != nil {
		return nil, fmt.Errorf("top students: %w", err)
	}
	return rows, nil
}

// ProgressReport aggregates one enrollment's totals per exam.
func (r *MarksRepository) ProgressReport(ctx context.Context, enrollmentID int64) ([]models.ProgressRow, error) {
	const query = `SELECT e.exam_name,
            COUNT(*) AS subjects_count,
            SUM(m.marks_obtained) AS total_obtained,
            SUM(m.max_marks) AS total_max,
            ROUND(SUM(m.marks_obtained) * 100.0 / NULLIF(SUM(m.max_marks), 0), 2) AS percentage
        FROM marks m
        JOIN exams e ON e.exam_id = m.exam_id
        WHERE m.enrollment_id = $1
        GROUP BY e.exam_id, e.exam_name
        ORDER BY e.exam_id`
	var rows []models.ProgressRow
	if err := r.db.SelectContext(ctx, &rows, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("progress report: %w", err)
	}
	return rows, nil
}
