package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type enrollmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByYear(ctx context.Context, yearID int64) ([]models.EnrollmentDetail, error)
	ListByClass(ctx context.Context, classID int64) ([]models.EnrollmentDetail, error)
	RollTaken(ctx context.Context, classID int64, rollNo int, excludeID int64) (bool, error)
	ChangeClassRoll(ctx context.Context, enrollmentID, classID int64, rollNo int) error
	ToggleStatus(ctx context.Context, enrollmentID int64) error
	CurrentByUserID(ctx context.Context, userID int64) (*models.CurrentEnrollment, error)
	HistoryByUserID(ctx context.Context, userID int64) ([]models.EnrollmentHistoryEntry, error)
}

// EnrollmentService manages individual enrollments outside the bulk
// promotion path.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger}
}

// ListByYear returns the session's enrollments.
func (s *EnrollmentService) ListByYear(ctx context.Context, yearID int64) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.ListByYear(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}

// ListByClass returns the class register.
func (s *EnrollmentService) ListByClass(ctx context.Context, classID int64) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class register")
	}
	return enrollments, nil
}

// ChangeClassRoll moves an enrollment to another class or roll within
// its own year. The new roll must not collide with another student in
// the target class.
func (s *EnrollmentService) ChangeClassRoll(ctx context.Context, req models.ChangeClassRollRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class change payload")
	}

	taken, err := s.repo.RollTaken(ctx, req.ClassID, req.RollNo, req.EnrollmentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check roll number")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrConflict, "roll number already taken in target class")
	}

	if err := s.repo.ChangeClassRoll(ctx, req.EnrollmentID, req.ClassID, req.RollNo); err != nil {
		return notFoundOr(err, "enrollment not found or class is in a different year")
	}

	s.logger.Info("enrollment moved",
		zap.Int64("enrollment_id", req.EnrollmentID),
		zap.Int64("class_id", req.ClassID),
		zap.Int("roll_no", req.RollNo))

	return nil
}

// ToggleStatus flips an enrollment between active and inactive and
// returns the new state. Enrollments in terminal states (left, passed,
// promoted) are not toggled.
func (s *EnrollmentService) ToggleStatus(ctx context.Context, req models.ToggleStatusRequest) (models.EnrollmentStatus, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid toggle payload")
	}

	enrollment, err := s.repo.FindByID(ctx, req.EnrollmentID)
	if err != nil {
		return "", notFoundOr(err, "enrollment not found")
	}
	if enrollment.Status != models.EnrollmentStatusActive && enrollment.Status != models.EnrollmentStatusInactive {
		return "", appErrors.Clone(appErrors.ErrConflict, "enrollment is in a terminal state")
	}

	if err := s.repo.ToggleStatus(ctx, req.EnrollmentID); err != nil {
		return "", notFoundOr(err, "enrollment not found")
	}

	newStatus := models.EnrollmentStatusActive
	if enrollment.Status == models.EnrollmentStatusActive {
		newStatus = models.EnrollmentStatusInactive
	}

	s.logger.Info("enrollment status toggled",
		zap.Int64("enrollment_id", req.EnrollmentID),
		zap.String("status", string(newStatus)))

	return newStatus, nil
}

// Current returns the caller's active-session enrollment.
func (s *EnrollmentService) Current(ctx context.Context, userID int64) (*models.CurrentEnrollment, error) {
	current, err := s.repo.CurrentByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "no enrollment in the active year")
	}
	return current, nil
}

// History returns the caller's full enrollment history, newest first.
func (s *EnrollmentService) History(ctx context.Context, userID int64) ([]models.EnrollmentHistoryEntry, error) {
	history, err := s.repo.HistoryByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment history")
	}
	return history, nil
}
