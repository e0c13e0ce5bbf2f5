package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. History rows are never deleted; promoted
// and passed enrollments stay behind for transcripts.
const (
	EnrollmentStatusActive   EnrollmentStatus = "active"
	EnrollmentStatusInactive EnrollmentStatus = "inactive"
	EnrollmentStatusLeft     EnrollmentStatus = "left"
	EnrollmentStatusPassed   EnrollmentStatus = "passed"
	EnrollmentStatusPromoted EnrollmentStatus = "promoted"
)

// Enrollment is one student's membership in one class for one academic
// year. This is the central mutable entity of the lifecycle workflow.
type Enrollment struct {
	ID              int64            `db:"enrollment_id" json:"enrollment_id"`
	StudentMasterID int64            `db:"student_master_id" json:"student_master_id"`
	UserID          *int64           `db:"user_id" json:"user_id,omitempty"`
	AcademicYearID  int64            `db:"academic_year_id" json:"academic_year_id"`
	ClassID         int64            `db:"class_id" json:"class_id"`
	RollNo          int              `db:"roll_no" json:"roll_no"`
	AdmissionDate   time.Time        `db:"admission_date" json:"admission_date"`
	Status          EnrollmentStatus `db:"status" json:"status"`
}

// EnrollmentDetail enriches Enrollment with student and class info.
type EnrollmentDetail struct {
	Enrollment
	RegNo       string `db:"reg_no" json:"reg_no"`
	StudentName string `db:"student_name" json:"student_name"`
	ClassLevel  int    `db:"class_level" json:"class_level"`
	Division    string `db:"division" json:"division"`
}

// EnrollmentHistoryEntry is one year of a student's enrollment history.
type EnrollmentHistoryEntry struct {
	EnrollmentID int64            `db:"enrollment_id" json:"enrollment_id"`
	RollNo       int              `db:"roll_no" json:"roll_no"`
	ClassLevel   int              `db:"class_level" json:"class_level"`
	Division     string           `db:"division" json:"division"`
	YearName     string           `db:"year_name" json:"year_name"`
	IsActive     bool             `db:"is_active" json:"is_active"`
	StartDate    time.Time        `db:"start_date" json:"start_date"`
	EndDate      time.Time        `db:"end_date" json:"end_date"`
	Status       EnrollmentStatus `db:"status" json:"status"`
}

// ChangeClassRollRequest moves an enrollment to another class or roll.
type ChangeClassRollRequest struct {
	EnrollmentID int64 `json:"enrollment_id" validate:"required"`
	ClassID      int64 `json:"class_id" validate:"required"`
	RollNo       int   `json:"roll_no" validate:"required"`
}

// ToggleStatusRequest flips an enrollment between active and inactive.
type ToggleStatusRequest struct {
	EnrollmentID int64 `json:"enrollment_id" validate:"required"`
}

// PromoteClassRequest starts a bulk promotion from the given class.
type PromoteClassRequest struct {
	ClassID int64 `json:"class_id" validate:"required"`
}

// PromotionResult reports the outcome of a promotion batch.
type PromotionResult struct {
	PromotedCount int   `json:"promoted_count"`
	Graduated     bool  `json:"graduated"`
	TargetClassID int64 `json:"target_class_id,omitempty"`
	TargetYearID  int64 `json:"target_year_id,omitempty"`
}
