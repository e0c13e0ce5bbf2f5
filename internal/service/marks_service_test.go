package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockMarksRepo struct {
	examID        int64
	savedMarks    []models.Mark
	replaceCalled bool
}

func (m *mockMarksRepo) GetOrCreateExam(ctx context.Context, examName string, yearID int64) (int64, error) {
	return m.examID, nil
}

func (m *mockMarksRepo) ReplaceMarks(ctx context.Context, subjectID, examID int64, marks []models.Mark) error {
	m.replaceCalled = true
	m.savedMarks = marks
	return nil
}

func (m *mockMarksRepo) StudentMarks(ctx context.Context, enrollmentID int64) ([]models.StudentMark, error) {
	return nil, nil
}

func (m *mockMarksRepo) ClassPerformance(ctx context.Context, classID int64) ([]models.PerformanceRow, error) {
	return nil, nil
}

func (m *mockMarksRepo) TopStudents(ctx context.Context, yearID int64, limit int) ([]models.PerformanceRow, error) {
	return make([]models.PerformanceRow, limit), nil
}

func (m *mockMarksRepo) ProgressReport(ctx context.Context, enrollmentID int64) ([]models.ProgressRow, error) {
	return nil, nil
}

type mockMarksSubjectRepo struct {
	subject *models.Subject
	taught  bool
}

func (m *mockMarksSubjectRepo) FindByID(ctx context.Context, subjectID int64) (*models.Subject, error) {
	if m.subject == nil {
		return nil, sql.ErrNoRows
	}
	return m.subject, nil
}

func (m *mockMarksSubjectRepo) TaughtBy(ctx context.Context, subjectID, teacherID int64) (bool, error) {
	return m.taught, nil
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		obtained float64
		max      float64
		grade    string
	}{
		{95, 100, "A+"},
		{90, 100, "A+"},
		{89.9, 100, "A"},
		{80, 100, "A"},
		{75, 100, "B"},
		{65, 100, "C"},
		{45, 100, "D"},
		{40, 100, "D"},
		{39.9, 100, "F"},
		{0, 100, "F"},
		{45, 50, "A+"},
		{10, 0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.grade, gradeFor(tc.obtained, tc.max), "%.1f/%.1f", tc.obtained, tc.max)
	}
}

func TestMarksServiceAddAssignsGrades(t *testing.T) {
	repo := &mockMarksRepo{examID: 11}
	subjects := &mockMarksSubjectRepo{subject: &models.Subject{ID: 4, AcademicYearID: 1, TeacherID: 2}, taught: true}
	svc := NewMarksService(repo, subjects, nil, nil)

	err := svc.Add(context.Background(), 2, models.AddMarksRequest{
		SubjectID: 4,
		ExamName:  "Midterm",
		MaxMarks:  100,
		Marks: []models.MarkEntry{
			{EnrollmentID: 1, MarksObtained: 92},
			{EnrollmentID: 2, MarksObtained: 34},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.savedMarks, 2)
	assert.Equal(t, "A+", repo.savedMarks[0].Grade)
	assert.Equal(t, "F", repo.savedMarks[1].Grade)
	assert.Equal(t, int64(11), repo.savedMarks[0].ExamID)
	assert.Equal(t, 100.0, repo.savedMarks[0].MaxMarks)
}

func TestMarksServiceAddRejectsExcessMarks(t *testing.T) {
	repo := &mockMarksRepo{examID: 11}
	subjects := &mockMarksSubjectRepo{subject: &models.Subject{ID: 4, AcademicYearID: 1}, taught: true}
	svc := NewMarksService(repo, subjects, nil, nil)

	err := svc.Add(context.Background(), 2, models.AddMarksRequest{
		SubjectID: 4,
		ExamName:  "Midterm",
		MaxMarks:  50,
		Marks:     []models.MarkEntry{{EnrollmentID: 1, MarksObtained: 51}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.replaceCalled)
}

func TestMarksServiceAddForbidsOtherTeacher(t *testing.T) {
	repo := &mockMarksRepo{examID: 11}
	subjects := &mockMarksSubjectRepo{subject: &models.Subject{ID: 4, AcademicYearID: 1, TeacherID: 9}, taught: false}
	svc := NewMarksService(repo, subjects, nil, nil)

	err := svc.Add(context.Background(), 2, models.AddMarksRequest{
		SubjectID: 4,
		ExamName:  "Midterm",
		MaxMarks:  100,
		Marks:     []models.MarkEntry{{EnrollmentID: 1, MarksObtained: 80}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.replaceCalled)
}

func TestMarksServiceAddAdminBypassesOwnership(t *testing.T) {
	repo := &mockMarksRepo{examID: 11}
	subjects := &mockMarksSubjectRepo{subject: &models.Subject{ID: 4, AcademicYearID: 1, TeacherID: 9}, taught: false}
	svc := NewMarksService(repo, subjects, nil, nil)

	err := svc.Add(context.Background(), 0, models.AddMarksRequest{
		SubjectID: 4,
		ExamName:  "Midterm",
		MaxMarks:  100,
		Marks:     []models.MarkEntry{{EnrollmentID: 1, MarksObtained: 80}},
	})
	require.NoError(t, err)
	assert.True(t, repo.replaceCalled)
}

func TestMarksServiceTopStudentsClampsLimit(t *testing.T) {
	repo := &mockMarksRepo{}
	svc := NewMarksService(repo, &mockMarksSubjectRepo{}, nil, nil)

	rows, err := svc.TopStudents(context.Background(), 1, -5)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	rows, err = svc.TopStudents(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	rows, err = svc.TopStudents(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
