package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindActiveByUsername returns an active user by username for sign-in.
func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT user_id, username, password, role, status, created_at FROM users WHERE username = $1 AND status = 'active' LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT user_id, username, password, role, status, created_at FROM users WHERE user_id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// List returns every account without password hashes.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT user_id, username, role, status, created_at FROM users ORDER BY user_id`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByRole returns accounts holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	const query = `SELECT user_id, username, role, status, created_at FROM users WHERE role = $1 ORDER BY user_id`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// Search matches usernames against a keyword.
func (r *UserRepository) Search(ctx context.Context, keyword string) ([]models.User, error) {
	const query = `SELECT user_id, username, role, status, created_at FROM users WHERE username ILIKE $1 ORDER BY username`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, "%"+keyword+"%"); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// UpdateStatus flips an account between active and inactive.
// Zero rows affected is reported as sql.ErrNoRows.
func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error {
	const query = `UPDATE users SET status = $2 WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	return requireRows(res)
}

// UpdatePassword replaces the stored hash for an account.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password = $2 WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return requireRows(res)
}

// CountByRole aggregates accounts per role.
func (r *UserRepository) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	const query = `SELECT role, COUNT(*) AS total FROM users GROUP BY role ORDER BY role`
	var counts []models.RoleCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	return counts, nil
}

// CreateWithEmployee inserts a user account and its employee profile row
// inside one transaction so a failed profile insert never strands a bare
// account.
func (r *UserRepository) CreateWithEmployee(ctx context.Context, user *models.User, employee *models.Employee) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertUser = `INSERT INTO users (username, password, role, status, created_at)
        VALUES ($1, $2, $3, 'active', $4) RETURNING user_id`
	if err = tx.GetContext(ctx, &user.ID, insertUser, user.Username, user.PasswordHash, user.Role, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert user: %w", mapConstraintError(err))
	}

	employee.UserID = user.ID
	const insertEmployee = `INSERT INTO employees (user_id, reg_no, fname, joining_date, salary)
        VALUES ($1, $2, $3, $4, $5) RETURNING employee_id`
	if err = tx.GetContext(ctx, &employee.ID, insertEmployee, employee.UserID, employee.RegNo, employee.FirstName, employee.JoiningDate, employee.Salary); err != nil {
		return fmt.Errorf("insert employee: %w", mapConstraintError(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}
