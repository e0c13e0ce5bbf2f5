package models

import "time"

// AttendanceStatus marks a student present or absent on a date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// AttendanceRecord is one student's mark for one date.
type AttendanceRecord struct {
	ID             int64            `db:"attendance_id" json:"attendance_id"`
	EnrollmentID   int64            `db:"enrollment_id" json:"enrollment_id"`
	AttendanceDate time.Time        `db:"attendance_date" json:"attendance_date"`
	Status         AttendanceStatus `db:"status" json:"status"`
}

// AttendanceEntry is a single mark inside a bulk marking request.
type AttendanceEntry struct {
	EnrollmentID int64            `json:"enrollment_id" validate:"required"`
	Status       AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
}

// MarkAttendanceRequest re-marks a class for one date; prior rows for the
// listed enrollments on that date are replaced.
type MarkAttendanceRequest struct {
	AttendanceDate string            `json:"attendance_date" validate:"required"`
	Students       []AttendanceEntry `json:"students" validate:"required,min=1,dive"`
}

// ClassAttendanceRow is one student's mark in the class register view.
type ClassAttendanceRow struct {
	AttendanceID int64            `db:"attendance_id" json:"attendance_id"`
	EnrollmentID int64            `db:"enrollment_id" json:"enrollment_id"`
	Status       AttendanceStatus `db:"status" json:"status"`
	FirstName    string           `db:"fname" json:"fname"`
	LastName     *string          `db:"lname" json:"lname,omitempty"`
	RollNo       int              `db:"roll_no" json:"roll_no"`
}

// MonthlyAttendance aggregates one enrollment's marks over a month.
type MonthlyAttendance struct {
	TotalDays   int                `json:"total_days"`
	PresentDays int                `json:"present_days"`
	AbsentDays  int                `json:"absent_days"`
	Records     []AttendanceRecord `json:"records"`
}
