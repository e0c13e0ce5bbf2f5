package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	ListByYear(ctx context.Context, yearID int64) ([]models.ClassSummary, error)
	Profile(ctx context.Context, id int64) (*models.ClassSummary, error)
	AssignTeacher(ctx context.Context, classID, teacherID int64) error
	DivisionCounts(ctx context.Context, yearID int64) ([]models.DivisionCount, error)
}

// ClassService manages classes within sessions.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs the service.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// Create adds a class to a session.
func (s *ClassService) Create(ctx context.Context, req models.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		ClassLevel:     req.ClassLevel,
		Division:       req.Division,
		AcademicYearID: req.AcademicYearID,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		if isDuplicate(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "class already exists in this year")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	s.logger.Info("class created",
		zap.Int64("class_id", class.ID),
		zap.Int("class_level", class.ClassLevel),
		zap.String("division", class.Division))

	return class, nil
}

// ListByYear returns the session's classes with teacher and headcount.
func (s *ClassService) ListByYear(ctx context.Context, yearID int64) ([]models.ClassSummary, error) {
	classes, err := s.repo.ListByYear(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// Profile returns one class with teacher and headcount.
func (s *ClassService) Profile(ctx context.Context, id int64) (*models.ClassSummary, error) {
	profile, err := s.repo.Profile(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "class not found")
	}
	return profile, nil
}

// AssignTeacher binds a homeroom teacher to a class.
func (s *ClassService) AssignTeacher(ctx context.Context, req models.AssignClassTeacherRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class teacher payload")
	}
	if err := s.repo.AssignTeacher(ctx, req.ClassID, req.TeacherID); err != nil {
		return notFoundOr(err, "class not found")
	}
	s.logger.Info("class teacher assigned", zap.Int64("class_id", req.ClassID), zap.Int64("teacher_id", req.TeacherID))
	return nil
}

// DivisionCounts returns headcounts per level and division for a session.
func (s *ClassService) DivisionCounts(ctx context.Context, yearID int64) ([]models.DivisionCount, error) {
	counts, err := s.repo.DivisionCounts(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count divisions")
	}
	return counts, nil
}
