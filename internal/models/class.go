package models

// Class is a level/division pair scoped to exactly one academic year.
// "Class 7-A" in consecutive years are distinct rows.
type Class struct {
	ID             int64  `db:"class_id" json:"class_id"`
	ClassLevel     int    `db:"class_level" json:"class_level"`
	Division       string `db:"division" json:"division"`
	AcademicYearID int64  `db:"academic_year_id" json:"academic_year_id"`
	ClassTeacherID *int64 `db:"class_teacher_id" json:"class_teacher_id,omitempty"`
}

// ClassSummary is a class row enriched with teacher name and headcount.
type ClassSummary struct {
	Class
	ClassTeacher  *string `db:"class_teacher" json:"class_teacher,omitempty"`
	TotalStudents int     `db:"total_students" json:"total_students"`
}

// DivisionCount aggregates enrollment headcount per level and division.
type DivisionCount struct {
	ClassLevel    int    `db:"class_level" json:"class_level"`
	Division      string `db:"division" json:"division"`
	TotalStudents int    `db:"total_students" json:"total_students"`
}

// CreateClassRequest payload for adding a class to a session.
type CreateClassRequest struct {
	ClassLevel     int    `json:"class_level" validate:"required,min=1"`
	Division       string `json:"division" validate:"required"`
	AcademicYearID int64  `json:"academic_year_id" validate:"required"`
}

// AssignClassTeacherRequest binds a homeroom teacher to a class.
type AssignClassTeacherRequest struct {
	ClassID   int64 `json:"class_id" validate:"required"`
	TeacherID int64 `json:"teacher_id" validate:"required"`
}
