package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type marksRepository interface {
	GetOrCreateExam(ctx context.Context, examName string, yearID int64) (int64, error)
	ReplaceMarks(ctx context.Context, subjectID, examID int64, marks []models.Mark) error
	StudentMarks(ctx context.Context, enrollmentID int64) ([]models.StudentMark, error)
	ClassPerformance(ctx context.Context, classID int64) ([]models.PerformanceRow, error)
	TopStudents(ctx context.Context, yearID int64, limit int) ([]models.PerformanceRow, error)
	ProgressReport(ctx context.Context, enrollmentID int64) ([]models.ProgressRow, error)
}

type marksSubjectRepository interface {
	FindByID(ctx context.Context, subjectID int64) (*models.Subject, error)
	TaughtBy(ctx context.Context, subjectID, teacherID int64) (bool, error)
}

// MarksService records exam scores and builds performance views.
type MarksService struct {
	repo      marksRepository
	subjects  marksSubjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarksService constructs the service.
func NewMarksService(repo marksRepository, subjects marksSubjectRepository, validate *validator.Validate, logger *zap.Logger) *MarksService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MarksService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

// gradeFor bands a percentage into a letter grade.
func gradeFor(obtained, max float64) string {
	if max <= 0 {
		return "F"
	}
	pct := obtained * 100 / max
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 40:
		return "D"
	default:
		return "F"
	}
}

// Add records scores for one subject and exam, creating the exam on
// first use. Only the subject's own teacher may record; re-entry for the
// same exam replaces earlier rows. teacherID zero skips the ownership
// check for admin entry.
func (s *MarksService) Add(ctx context.Context, teacherID int64, req models.AddMarksRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	for _, entry := range req.Marks {
		if entry.MarksObtained > req.MaxMarks {
			return appErrors.Clone(appErrors.ErrValidation, "marks obtained exceed max marks")
		}
	}

	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		return notFoundOr(err, "subject not found")
	}

	if teacherID != 0 {
		taught, err := s.subjects.TaughtBy(ctx, req.SubjectID, teacherID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject ownership")
		}
		if !taught {
			return appErrors.Clone(appErrors.ErrForbidden, "subject is taught by another teacher")
		}
	}

	examID, err := s.repo.GetOrCreateExam(ctx, req.ExamName, subject.AcademicYearID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve exam")
	}

	marks := make([]models.Mark, 0, len(req.Marks))
	for _, entry := range req.Marks {
		marks = append(marks, models.Mark{
			EnrollmentID:  entry.EnrollmentID,
			SubjectID:     req.SubjectID,
			ExamID:        examID,
			MarksObtained: entry.MarksObtained,
			MaxMarks:      req.MaxMarks,
			Grade:         gradeFor(entry.MarksObtained, req.MaxMarks),
		})
	}

	if err := s.repo.ReplaceMarks(ctx, req.SubjectID, examID, marks); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
	}

	s.logger.Info("marks recorded",
		zap.Int64("subject_id", req.SubjectID),
		zap.String("exam_name", req.ExamName),
		zap.Int("students", len(marks)))

	return nil
}

// StudentMarks returns every scored subject/exam pair for an enrollment.
func (s *MarksService) StudentMarks(ctx context.Context, enrollmentID int64) ([]models.StudentMark, error) {
	marks, err := s.repo.StudentMarks(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student marks")
	}
	return marks, nil
}

// ClassPerformance ranks the class by aggregate percentage.
func (s *MarksService) ClassPerformance(ctx context.Context, classID int64) ([]models.PerformanceRow, error) {
	rows, err := s.repo.ClassPerformance(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build class performance")
	}
	return rows, nil
}

// TopStudents returns the session's highest-percentage students.
func (s *MarksService) TopStudents(ctx context.Context, yearID int64, limit int) ([]models.PerformanceRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := s.repo.TopStudents(ctx, yearID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rank students")
	}
	return rows, nil
}

// ProgressReport aggregates one enrollment's totals per exam.
func (s *MarksService) ProgressReport(ctx context.Context, enrollmentID int64) ([]models.ProgressRow, error) {
	rows, err := s.repo.ProgressReport(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build progress report")
	}
	return rows, nil
}
