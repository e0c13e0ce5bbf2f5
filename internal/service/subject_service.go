package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type subjectRepository interface {
	Create(ctx context.Context, req *models.CreateSubjectRequest) (int64, error)
	Info(ctx context.Context, subjectID int64) (*models.SubjectInfo, error)
	ListByClass(ctx context.Context, classID int64) ([]models.SubjectWithTeacher, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubject, error)
	ChangeTeacher(ctx context.Context, subjectID, teacherID int64) error
	TaughtBy(ctx context.Context, subjectID, teacherID int64) (bool, error)
}

// SubjectService manages subjects and teacher assignment.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// Create adds a subject to a class.
func (s *SubjectService) Create(ctx context.Context, req models.CreateSubjectRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subjectID, err := s.repo.Create(ctx, &req)
	if err != nil {
		if isDuplicate(err) {
			return 0, appErrors.Clone(appErrors.ErrConflict, "subject already exists in this class")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.logger.Info("subject created", zap.Int64("subject_id", subjectID), zap.String("subject_name", req.SubjectName))
	return subjectID, nil
}

// Info returns the detail view of a subject.
func (s *SubjectService) Info(ctx context.Context, subjectID int64) (*models.SubjectInfo, error) {
	info, err := s.repo.Info(ctx, subjectID)
	if err != nil {
		return nil, notFoundOr(err, "subject not found")
	}
	return info, nil
}

// ListByClass returns the class's subjects with teacher names.
func (s *SubjectService) ListByClass(ctx context.Context, classID int64) ([]models.SubjectWithTeacher, error) {
	subjects, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// ListByTeacher returns the teacher's active-year subjects.
func (s *SubjectService) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubject, error) {
	subjects, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher subjects")
	}
	return subjects, nil
}

// ChangeTeacher reassigns a subject to another teacher.
func (s *SubjectService) ChangeTeacher(ctx context.Context, req models.ChangeSubjectTeacherRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher change payload")
	}
	if err := s.repo.ChangeTeacher(ctx, req.SubjectID, req.TeacherID); err != nil {
		return notFoundOr(err, "subject not found")
	}
	s.logger.Info("subject teacher changed", zap.Int64("subject_id", req.SubjectID), zap.Int64("teacher_id", req.TeacherID))
	return nil
}

// TaughtBy reports whether the teacher owns the subject.
func (s *SubjectService) TaughtBy(ctx context.Context, subjectID, teacherID int64) (bool, error) {
	taught, err := s.repo.TaughtBy(ctx, subjectID, teacherID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject ownership")
	}
	return taught, nil
}
