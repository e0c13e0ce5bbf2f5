package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// StudentRepository persists student master records and the transactional
// registration flow that creates master, account and first enrollment
// together.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Register creates the student master record, the login account and the
// first enrollment in one transaction. A failure at any step leaves no
// partial student behind.
func (r *StudentRepository) Register(ctx context.Context, req *models.RegisterStudentRequest, passwordHash string) (masterID, userID, enrollmentID int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("begin registration transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertUser = `INSERT INTO users (username, password, role, status)
        VALUES ($1, $2, $3, $4) RETURNING user_id`
	if err = tx.GetContext(ctx, &userID, insertUser,
		req.RegNo, passwordHash, models.RoleStudent, models.UserStatusActive); err != nil {
		err = mapConstraintError(err)
		return 0, 0, 0, fmt.Errorf("insert student account: %w", err)
	}

	const insertMaster = `INSERT INTO student_master (reg_no, fname, gender)
        VALUES ($1, $2, $3) RETURNING student_master_id`
	if err = tx.GetContext(ctx, &masterID, insertMaster,
		req.RegNo, req.FirstName, req.Gender); err != nil {
		err = mapConstraintError(err)
		return 0, 0, 0, fmt.Errorf("insert student master: %w", err)
	}

	const insertEnrollment = `INSERT INTO student_enrollments
            (student_master_id, user_id, academic_year_id, class_id, roll_no, admission_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING enrollment_id`
	if err = tx.GetContext(ctx, &enrollmentID, insertEnrollment,
		masterID, userID, req.AcademicYearID, req.ClassID, req.RollNo,
		req.AdmissionDate, models.EnrollmentStatusActive); err != nil {
		err = mapConstraintError(err)
		return 0, 0, 0, fmt.Errorf("insert first enrollment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, 0, fmt.Errorf("commit registration: %w", err)
	}
	return masterID, userID, enrollmentID, nil
}

// FindByID returns one master record.
func (r *StudentRepository) FindByID(ctx context.Context, masterID int64) (*models.StudentMaster, error) {
	const query = `SELECT student_master_id, reg_no, fname, lname, mother_name, gender, dob, email, mobile, address
        FROM student_master WHERE student_master_id = $1`
	var student models.StudentMaster
	if err := r.db.GetContext(ctx, &student, query, masterID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// FindByRegNo returns one master record by registration number.
func (r *StudentRepository) FindByRegNo(ctx context.Context, regNo string) (*models.StudentMaster, error) {
	const query = `SELECT student_master_id, reg_no, fname, lname, mother_name, gender, dob, email, mobile, address
        FROM student_master WHERE reg_no = $1`
	var student models.StudentMaster
	if err := r.db.GetContext(ctx, &student, query, regNo); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by reg no: %w", err)
	}
	return &student, nil
}

// ProfileByUserID returns the student profile joined with the current
// session's enrollment.
func (r *StudentRepository) ProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	const query = `SELECT sm.student_master_id, sm.reg_no, sm.fname, sm.lname, sm.mother_name, sm.gender,
            sm.dob, sm.email, sm.mobile, sm.address,
            se.roll_no, se.admission_date,
            c.class_level, c.division, ay.year_name
        FROM student_master sm
        JOIN student_enrollments se ON se.student_master_id = sm.student_master_id
        JOIN classes c ON c.class_id = se.class_id
        JOIN academic_years ay ON ay.academic_year_id = se.academic_year_id
        WHERE se.user_id = $1 AND ay.is_active = TRUE`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("student profile: %w", err)
	}
	return &profile, nil
}

// UpdateContact lets a student change their own contact fields. Master
// data beyond these stays admin-controlled.
func (r *StudentRepository) UpdateContact(ctx context.Context, userID int64, req *models.UpdateStudentContactRequest) error {
	const query = `UPDATE student_master sm
        SET mobile = $2, email = $3, address = $4
        FROM student_enrollments se
        WHERE se.student_master_id = sm.student_master_id AND se.user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, req.Mobile, req.Email, req.Address)
	if err != nil {
		return fmt.Errorf("update student contact: %w", err)
	}
	return requireRows(res)
}

// GenderCounts returns the gender split of active students in a session.
func (r *StudentRepository) GenderCounts(ctx context.Context, yearID int64) ([]models.GenderCount, error) {
	const query = `SELECT sm.gender, COUNT(DISTINCT sm.student_master_id) AS count
        FROM student_master sm
        JOIN student_enrollments se ON se.student_master_id = sm.student_master_id
        WHERE se.academic_year_id = $1 AND se.status = $2
        GROUP BY sm.gender`
	var counts []models.GenderCount
	if err := r.db.SelectContext(ctx, &counts, query, yearID, models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("gender counts: %w", err)
	}
	return counts, nil
}
