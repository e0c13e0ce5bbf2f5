package models

// Subject is taught in one class by one teacher within one academic year.
type Subject struct {
	ID             int64  `db:"subject_id" json:"subject_id"`
	SubjectName    string `db:"subject_name" json:"subject_name"`
	ClassID        int64  `db:"class_id" json:"class_id"`
	TeacherID      int64  `db:"teacher_id" json:"teacher_id"`
	AcademicYearID int64  `db:"academic_year_id" json:"academic_year_id"`
}

// SubjectWithTeacher enriches a subject with the teacher's display name.
type SubjectWithTeacher struct {
	Subject
	Teacher string `db:"teacher" json:"teacher"`
}

// SubjectInfo is the detail view of a single subject.
type SubjectInfo struct {
	SubjectName string `db:"subject_name" json:"subject_name"`
	ClassLevel  int    `db:"class_level" json:"class_level"`
	Division    string `db:"division" json:"division"`
	Teacher     string `db:"teacher" json:"teacher"`
}

// TeacherSubject is a subject as seen from the teaching roster.
type TeacherSubject struct {
	SubjectID   int64  `db:"subject_id" json:"subject_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	ClassID     int64  `db:"class_id" json:"class_id"`
	ClassLevel  int    `db:"class_level" json:"class_level"`
	Division    string `db:"division" json:"division"`
	YearName    string `db:"year_name" json:"year_name"`
}

// CreateSubjectRequest payload for adding a subject.
type CreateSubjectRequest struct {
	SubjectName    string `json:"subject_name" validate:"required"`
	ClassID        int64  `json:"class_id" validate:"required"`
	TeacherID      int64  `json:"teacher_id" validate:"required"`
	AcademicYearID int64  `json:"academic_year_id" validate:"required"`
}

// ChangeSubjectTeacherRequest reassigns a subject to another teacher.
type ChangeSubjectTeacherRequest struct {
	SubjectID int64 `json:"subject_id" validate:"required"`
	TeacherID int64 `json:"teacher_id" validate:"required"`
}
