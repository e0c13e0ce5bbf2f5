package models

import "time"

// AcademicYear is a bounded school term. At most one year is active at a
// time; a closed year can no longer receive promotions.
type AcademicYear struct {
	ID        int64     `db:"academic_year_id" json:"academic_year_id"`
	YearName  string    `db:"year_name" json:"year_name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	IsClosed  bool      `db:"is_closed" json:"is_closed"`
}

// CreateAcademicYearRequest payload for opening a new session.
type CreateAcademicYearRequest struct {
	YearName  string `json:"year_name" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}
