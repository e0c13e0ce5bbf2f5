package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type academicYearRepository interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	List(ctx context.Context) ([]models.AcademicYear, error)
	FindByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	Close(ctx context.Context, id int64) error
	Activate(ctx context.Context, id int64) error
	FindActive(ctx context.Context) (*models.AcademicYear, error)
}

// AcademicYearService manages school sessions.
type AcademicYearService struct {
	repo      academicYearRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicYearService constructs the service.
func NewAcademicYearService(repo academicYearRepository, validate *validator.Validate, logger *zap.Logger) *AcademicYearService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AcademicYearService{repo: repo, validator: validate, logger: logger}
}

// Create opens a new session. The new session starts inactive; admins
// activate it explicitly.
func (s *AcademicYearService) Create(ctx context.Context, req models.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid academic year payload")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be after start_date")
	}

	year := &models.AcademicYear{
		YearName:  req.YearName,
		StartDate: start,
		EndDate:   end,
	}
	if err := s.repo.Create(ctx, year); err != nil {
		if isDuplicate(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "academic year already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academic year")
	}

	s.logger.Info("academic year created", zap.Int64("academic_year_id", year.ID), zap.String("year_name", year.YearName))

	return year, nil
}

// List returns all sessions, newest first.
func (s *AcademicYearService) List(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic years")
	}
	return years, nil
}

// Active returns the single active session.
func (s *AcademicYearService) Active(ctx context.Context) (*models.AcademicYear, error) {
	year, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, notFoundOr(err, "no active academic year")
	}
	return year, nil
}

// Activate makes the given session the active one, deactivating whatever
// was active before. Closed sessions cannot be reactivated.
func (s *AcademicYearService) Activate(ctx context.Context, id int64) error {
	if err := s.repo.Activate(ctx, id); err != nil {
		return notFoundOr(err, "academic year not found or closed")
	}
	s.logger.Info("academic year activated", zap.Int64("academic_year_id", id))
	return nil
}

// Close permanently closes a session. Closed sessions no longer accept
// promotions.
func (s *AcademicYearService) Close(ctx context.Context, id int64) error {
	if err := s.repo.Close(ctx, id); err != nil {
		return notFoundOr(err, "academic year not found")
	}
	s.logger.Info("academic year closed", zap.Int64("academic_year_id", id))
	return nil
}
