package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// AcademicYearRepository handles persistence of school sessions.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository constructs the repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Create inserts a new academic year.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	const query = `INSERT INTO academic_years (year_name, start_date, end_date, is_active, is_closed)
        VALUES ($1, $2, $3, FALSE, FALSE) RETURNING academic_year_id`
	if err := r.db.GetContext(ctx, &year.ID, query, year.YearName, year.StartDate, year.EndDate); err != nil {
		return fmt.Errorf("create academic year: %w", mapConstraintError(err))
	}
	return nil
}

// List returns all sessions newest first.
func (r *AcademicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	const query = `SELECT academic_year_id, year_name, start_date, end_date, is_active, is_closed
        FROM academic_years ORDER BY start_date DESC`
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query); err != nil {
		return nil, fmt.Errorf("list academic years: %w", err)
	}
	return years, nil
}

// FindByID returns one session.
func (r *AcademicYearRepository) FindByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	const query = `SELECT academic_year_id, year_name, start_date, end_date, is_active, is_closed
        FROM academic_years WHERE academic_year_id = $1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find academic year: %w", err)
	}
	return &year, nil
}

// Close marks a session closed; closed years can no longer receive promotions.
func (r *AcademicYearRepository) Close(ctx context.Context, id int64) error {
	const query = `UPDATE academic_years SET is_closed = TRUE WHERE academic_year_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("close academic year: %w", err)
	}
	return requireRows(res)
}

// Activate marks one session active and every other inactive inside one
// transaction, keeping the single-active-year invariant.
func (r *AcademicYearRepository) Activate(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `UPDATE academic_years SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("deactivate academic years: %w", err)
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, `UPDATE academic_years SET is_active = TRUE WHERE academic_year_id = $1 AND is_closed = FALSE`, id)
	if err != nil {
		return fmt.Errorf("activate academic year: %w", err)
	}
	if err = requireRows(res); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit activate: %w", err)
	}
	return nil
}

// FindNextOpen returns the chronologically next non-closed session after
// the given one, ordered by start date.
func (r *AcademicYearRepository) FindNextOpen(ctx context.Context, afterID int64) (*models.AcademicYear, error) {
	const query = `SELECT academic_year_id, year_name, start_date, end_date, is_active, is_closed
        FROM academic_years
        WHERE start_date > (SELECT start_date FROM academic_years WHERE academic_year_id = $1)
          AND is_closed = FALSE
        ORDER BY start_date
        LIMIT 1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query, afterID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find next academic year: %w", err)
	}
	return &year, nil
}

// FindActive returns the currently active session.
func (r *AcademicYearRepository) FindActive(ctx context.Context) (*models.AcademicYear, error) {
	const query = `SELECT academic_year_id, year_name, start_date, end_date, is_active, is_closed
        FROM academic_years WHERE is_active = TRUE LIMIT 1`
	var year models.AcademicYear
	if err := r.db.GetContext(ctx, &year, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find active academic year: %w", err)
	}
	return &year, nil
}
