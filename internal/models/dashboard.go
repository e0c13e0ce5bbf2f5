package models

import "time"

// AdminDashboard summarises one session for the admin landing page.
type AdminDashboard struct {
	TotalClasses  int `db:"total_classes" json:"total_classes"`
	TotalStudents int `db:"total_students" json:"total_students"`
	TotalTeachers int `db:"total_teachers" json:"total_teachers"`
	TotalSubjects int `db:"total_subjects" json:"total_subjects"`
}

// TeacherDashboard summarises a teacher's active-year workload.
type TeacherDashboard struct {
	TotalClasses  int `json:"total_classes"`
	TotalSubjects int `json:"total_subjects"`
	TotalStudents int `json:"total_students"`
}

// TeacherClass is one class in a teacher's roster.
type TeacherClass struct {
	ClassID      int64  `db:"class_id" json:"class_id"`
	ClassLevel   int    `db:"class_level" json:"class_level"`
	Division     string `db:"division" json:"division"`
	YearName     string `db:"year_name" json:"year_name"`
	StudentCount int    `db:"student_count" json:"student_count"`
}

// ClassStudent is one row of a teacher's class register.
type ClassStudent struct {
	EnrollmentID    int64   `db:"enrollment_id" json:"enrollment_id"`
	RollNo          int     `db:"roll_no" json:"roll_no"`
	StudentMasterID int64   `db:"student_master_id" json:"student_master_id"`
	FirstName       string  `db:"fname" json:"fname"`
	LastName        *string `db:"lname" json:"lname,omitempty"`
	Gender          string  `db:"gender" json:"gender"`
	RegNo           string  `db:"reg_no" json:"reg_no"`
}

// CurrentEnrollment is the student's active-year enrollment snapshot.
type CurrentEnrollment struct {
	EnrollmentID    int64     `db:"enrollment_id" json:"enrollment_id"`
	StudentMasterID int64     `db:"student_master_id" json:"student_master_id"`
	RollNo          int       `db:"roll_no" json:"roll_no"`
	AdmissionDate   time.Time `db:"admission_date" json:"admission_date"`
	AcademicYearID  int64     `db:"academic_year_id" json:"academic_year_id"`
	AcademicYear    string    `db:"academic_year" json:"academic_year"`
	ClassID         int64     `db:"class_id" json:"class_id"`
	ClassLevel      int       `db:"class_level" json:"class_level"`
	Division        string    `db:"division" json:"division"`
	ClassTeacher    *string   `db:"class_teacher" json:"class_teacher,omitempty"`
}

// StudentDashboard is the student's landing page summary.
type StudentDashboard struct {
	EnrollmentID int64   `db:"enrollment_id" json:"enrollment_id"`
	RollNo       int     `db:"roll_no" json:"roll_no"`
	ClassLevel   int     `db:"class_level" json:"class_level"`
	Division     string  `db:"division" json:"division"`
	YearName     string  `db:"year_name" json:"year_name"`
	ClassTeacher *string `db:"class_teacher" json:"class_teacher,omitempty"`
	TotalDays    int     `db:"total_days" json:"total_days"`
	PresentDays  int     `db:"present_days" json:"present_days"`
}

// GenderCount aggregates people by gender for principal statistics.
type GenderCount struct {
	Gender string `db:"gender" json:"gender"`
	Count  int    `db:"count" json:"count"`
}

// TeacherWorkload counts subjects taught per teacher.
type TeacherWorkload struct {
	EmployeeID   int64   `db:"employee_id" json:"employee_id"`
	FirstName    string  `db:"fname" json:"fname"`
	LastName     *string `db:"lname" json:"lname,omitempty"`
	SubjectCount int     `db:"subject_count" json:"subject_count"`
}
