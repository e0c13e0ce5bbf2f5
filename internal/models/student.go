package models

import "time"

// StudentMaster represents the student as a person, independent of any
// particular year's enrollment.
type StudentMaster struct {
	ID         int64      `db:"student_master_id" json:"student_master_id"`
	RegNo      string     `db:"reg_no" json:"reg_no"`
	FirstName  string     `db:"fname" json:"fname"`
	LastName   *string    `db:"lname" json:"lname,omitempty"`
	MotherName *string    `db:"mother_name" json:"mother_name,omitempty"`
	Gender     string     `db:"gender" json:"gender"`
	DOB        *time.Time `db:"dob" json:"dob,omitempty"`
	Email      *string    `db:"email" json:"email,omitempty"`
	Mobile     *string    `db:"mobile" json:"mobile,omitempty"`
	Address    *string    `db:"address" json:"address,omitempty"`
}

// RegisterStudentRequest creates a master record plus the first
// enrollment in one transaction.
type RegisterStudentRequest struct {
	RegNo          string `json:"reg_no" validate:"required"`
	FirstName      string `json:"fname" validate:"required"`
	Gender         string `json:"gender" validate:"required"`
	RollNo         int    `json:"roll_no" validate:"required"`
	ClassID        int64  `json:"class_id" validate:"required"`
	AcademicYearID int64  `json:"academic_year_id" validate:"required"`
	AdmissionDate  string `json:"admission_date" validate:"required"`
}

// UpdateStudentContactRequest is the student's self-service profile update.
// Master data beyond contact fields stays admin-controlled.
type UpdateStudentContactRequest struct {
	Mobile  string `json:"mobile"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// StudentProfile joins master data with the active year's enrollment.
type StudentProfile struct {
	StudentMasterID int64      `db:"student_master_id" json:"student_master_id"`
	RegNo           string     `db:"reg_no" json:"reg_no"`
	FirstName       string     `db:"fname" json:"fname"`
	LastName        *string    `db:"lname" json:"lname,omitempty"`
	MotherName      *string    `db:"mother_name" json:"mother_name,omitempty"`
	Gender          string     `db:"gender" json:"gender"`
	DOB             *time.Time `db:"dob" json:"dob,omitempty"`
	Email           *string    `db:"email" json:"email,omitempty"`
	Mobile          *string    `db:"mobile" json:"mobile,omitempty"`
	Address         *string    `db:"address" json:"address,omitempty"`
	RollNo          int        `db:"roll_no" json:"roll_no"`
	AdmissionDate   time.Time  `db:"admission_date" json:"admission_date"`
	ClassLevel      int        `db:"class_level" json:"class_level"`
	Division        string     `db:"division" json:"division"`
	YearName        string     `db:"year_name" json:"year_name"`
}
