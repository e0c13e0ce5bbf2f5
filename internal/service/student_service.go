package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, masterID int64) (*models.StudentMaster, error)
	FindByRegNo(ctx context.Context, regNo string) (*models.StudentMaster, error)
	ProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	UpdateContact(ctx context.Context, userID int64, req *models.UpdateStudentContactRequest) error
}

// StudentService exposes student master data and self-service updates.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// FindByRegNo looks up one student by registration number.
func (s *StudentService) FindByRegNo(ctx context.Context, regNo string) (*models.StudentMaster, error) {
	student, err := s.repo.FindByRegNo(ctx, regNo)
	if err != nil {
		return nil, notFoundOr(err, "student not found")
	}
	return student, nil
}

// Profile returns the caller's profile with the active-year enrollment.
func (s *StudentService) Profile(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := s.repo.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "no enrollment in the active year")
	}
	return profile, nil
}

// UpdateContact applies the caller's self-service contact changes.
func (s *StudentService) UpdateContact(ctx context.Context, userID int64, req models.UpdateStudentContactRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}
	if err := s.repo.UpdateContact(ctx, userID, &req); err != nil {
		return notFoundOr(err, "student not found")
	}
	s.logger.Info("student contact updated", zap.Int64("user_id", userID))
	return nil
}
