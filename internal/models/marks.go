package models

// Exam groups marks under a named assessment within an academic year.
type Exam struct {
	ID             int64  `db:"exam_id" json:"exam_id"`
	ExamName       string `db:"exam_name" json:"exam_name"`
	AcademicYearID int64  `db:"academic_year_id" json:"academic_year_id"`
}

// Mark is one student's score for one subject in one exam.
type Mark struct {
	EnrollmentID  int64   `db:"enrollment_id" json:"enrollment_id"`
	SubjectID     int64   `db:"subject_id" json:"subject_id"`
	ExamID        int64   `db:"exam_id" json:"exam_id"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
	Grade         string  `db:"grade" json:"grade"`
}

// MarkEntry is a single score inside a bulk entry request.
type MarkEntry struct {
	EnrollmentID  int64   `json:"enrollment_id" validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
}

// AddMarksRequest records scores for a subject; re-entry for the same
// exam replaces earlier rows.
type AddMarksRequest struct {
	SubjectID int64       `json:"subject_id" validate:"required"`
	ExamName  string      `json:"exam_name" validate:"required"`
	MaxMarks  float64     `json:"max_marks" validate:"required,gt=0"`
	Marks     []MarkEntry `json:"marks" validate:"required,min=1,dive"`
}

// StudentMark is one scored subject/exam pair in a student's view.
type StudentMark struct {
	SubjectName   string  `db:"subject_name" json:"subject_name"`
	ExamName      string  `db:"exam_name" json:"exam_name"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
	Grade         string  `db:"grade" json:"grade"`
}

// PerformanceRow is one student's aggregate in the class performance view.
type PerformanceRow struct {
	EnrollmentID  int64    `db:"enrollment_id" json:"enrollment_id"`
	StudentName   string   `db:"student_name" json:"student_name"`
	RollNo        int      `db:"roll_no" json:"roll_no"`
	RegNo         *string  `db:"reg_no" json:"reg_no,omitempty"`
	TotalSubjects int      `db:"total_subjects" json:"total_subjects"`
	TotalObtained *float64 `db:"total_marks_obtained" json:"total_marks_obtained"`
	TotalMax      *float64 `db:"total_max_marks" json:"total_max_marks"`
	Percentage    *float64 `db:"percentage" json:"percentage"`
}

// ProgressRow is one exam's aggregate in a student's progress report.
type ProgressRow struct {
	ExamName      string   `db:"exam_name" json:"exam_name"`
	SubjectsCount int      `db:"subjects_count" json:"subjects_count"`
	TotalObtained *float64 `db:"total_obtained" json:"total_obtained"`
	TotalMax      *float64 `db:"total_max" json:"total_max"`
	Percentage    *float64 `db:"percentage" json:"percentage"`
}
