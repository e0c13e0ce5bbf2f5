package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// EmployeeRepository persists staff profile rows.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FindByID returns one employee row.
func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID int64) (*models.Employee, error) {
	const query = `SELECT employee_id, user_id, reg_no, fname, mname, lname, gender,
            mobile, email, address, image, joining_date, salary
        FROM employees WHERE employee_id = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, employeeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return &employee, nil
}

// FindByUserID returns the employee row linked to a user account.
func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID int64) (*models.Employee, error) {
	const query = `SELECT employee_id, user_id, reg_no, fname, mname, lname, gender,
            mobile, email, address, image, joining_date, salary
        FROM employees WHERE user_id = $1`
	var employee models.Employee
	if err := r.db.GetContext(ctx, &employee, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find employee by user: %w", err)
	}
	return &employee, nil
}

// ProfileByUserID joins the employee row with its account.
func (r *EmployeeRepository) ProfileByUserID(ctx context.Context, userID int64) (*models.EmployeeProfile, error) {
	const query = `SELECT e.employee_id, e.user_id, e.reg_no, e.fname, e.mname, e.lname, e.gender,
            e.mobile, e.email, e.address, e.image, e.joining_date, e.salary,
            u.username, u.status
        FROM employees e
        JOIN users u ON u.user_id = e.user_id
        WHERE e.user_id = $1`
	var profile models.EmployeeProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("employee profile: %w", err)
	}
	return &profile, nil
}

// ListByRole returns all staff of one role with account status attached.
func (r *EmployeeRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.EmployeeSummary, error) {
	const query = `SELECT e.employee_id, e.user_id, e.fname, e.lname, e.salary, u.status
        FROM employees e
        JOIN users u ON u.user_id = e.user_id
        WHERE u.role = $1
        ORDER BY e.fname, e.lname`
	var staff []models.EmployeeSummary
	if err := r.db.SelectContext(ctx, &staff, query, role); err != nil {
		return nil, fmt.Errorf("list employees by role: %w", err)
	}
	return staff, nil
}

// UpdateProfile applies an employee's self-service profile changes.
func (r *EmployeeRepository) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateEmployeeProfileRequest) error {
	const query = `UPDATE employees
        SET fname = $2, mname = $3, lname = $4, gender = $5, mobile = $6, address = $7, email = $8
        WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID,
		req.FirstName, req.MiddleName, req.LastName, req.Gender, req.Mobile, req.Address, req.Email)
	if err != nil {
		return fmt.Errorf("update employee profile: %w", err)
	}
	return requireRows(res)
}

// UpdateSalary adjusts one employee's salary.
func (r *EmployeeRepository) UpdateSalary(ctx context.Context, employeeID int64, salary float64) error {
	const query = `UPDATE employees SET salary = $2 WHERE employee_id = $1`
	res, err := r.db.ExecContext(ctx, query, employeeID, salary)
	if err != nil {
		return fmt.Errorf("update salary: %w", err)
	}
	return requireRows(res)
}

// TeacherWorkloads counts subjects taught per teacher in a session.
func (r *EmployeeRepository) TeacherWorkloads(ctx context.Context, yearID int64) ([]models.TeacherWorkload, error) {
	const query = `SELECT e.employee_id, e.fname, e.lname, COUNT(s.subject_id) AS subject_count
        FROM employees e
        JOIN users u ON u.user_id = e.user_id
        LEFT JOIN subjects s ON s.teacher_id = e.employee_id AND s.academic_year_id = $1
        WHERE u.role = $2
        GROUP BY e.employee_id, e.fname, e.lname
        ORDER BY subject_count DESC, e.fname`
	var workloads []models.TeacherWorkload
	if err := r.db.SelectContext(ctx, &workloads, query, yearID, models.RoleTeacher); err != nil {
		return nil, fmt.Errorf("teacher workloads: %w", err)
	}
	return workloads, nil
}
