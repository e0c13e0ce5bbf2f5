package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/repository"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type promotionClassRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	FindByYearAndLevel(ctx context.Context, yearID int64, level int) (*models.Class, error)
}

type promotionYearRepository interface {
	FindNextOpen(ctx context.Context, afterID int64) (*models.AcademicYear, error)
}

type promotionEnrollmentRepository interface {
	CountActiveByClass(ctx context.Context, classID int64) (int, error)
	CountPromotedByClass(ctx context.Context, classID int64) (int, error)
	GraduateClass(ctx context.Context, classID int64) (int, error)
	PromoteCohort(ctx context.Context, sourceClassID, targetClassID, targetYearID int64, admissionDate time.Time) (int, error)
}

// PromotionService runs the bulk promotion workflow. Promoting a
// terminal class graduates the cohort; any other class moves to the next
// level in the next open session as one atomic batch.
type PromotionService struct {
	classes       promotionClassRepository
	years         promotionYearRepository
	enrollments   promotionEnrollmentRepository
	validator     *validator.Validate
	logger        *zap.Logger
	terminalLevel int
	now           func() time.Time
}

// NewPromotionService constructs the service. terminalLevel is the
// highest grade the school teaches.
func NewPromotionService(classes promotionClassRepository, years promotionYearRepository, enrollments promotionEnrollmentRepository, validate *validator.Validate, logger *zap.Logger, terminalLevel int) *PromotionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PromotionService{
		classes:       classes,
		years:         years,
		enrollments:   enrollments,
		validator:     validate,
		logger:        logger,
		terminalLevel: terminalLevel,
		now:           time.Now,
	}
}

// Promote executes the workflow for one source class:
//
//   - terminal class: every active enrollment becomes passed,
//   - otherwise: resolve the next open session and the next-level class
//     in it, then move the whole cohort in one transaction.
//
// Precondition failures are reported before anything is written; a
// failure inside the batch rolls back in full.
func (s *PromotionService) Promote(ctx context.Context, req models.PromoteClassRequest) (*models.PromotionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid promotion payload")
	}

	source, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		return nil, notFoundOr(err, "source class not found")
	}

	active, err := s.enrollments.CountActiveByClass(ctx, source.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cohort")
	}
	if active == 0 {
		moved, err := s.enrollments.CountPromotedByClass(ctx, source.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cohort")
		}
		if moved > 0 {
			return nil, appErrors.Clone(appErrors.ErrAlreadyPromoted, "")
		}
		return nil, appErrors.Clone(appErrors.ErrNoStudents, "")
	}

	if source.ClassLevel >= s.terminalLevel {
		graduated, err := s.enrollments.GraduateClass(ctx, source.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to graduate class")
		}
		s.logger.Info("class graduated",
			zap.Int64("class_id", source.ID),
			zap.Int("graduated", graduated))
		return &models.PromotionResult{PromotedCount: graduated, Graduated: true}, nil
	}

	nextYear, err := s.years.FindNextOpen(ctx, source.AcademicYearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoNextYear, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve next year")
	}

	target, err := s.classes.FindByYearAndLevel(ctx, nextYear.ID, source.ClassLevel+1)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoTargetClass, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve target class")
	}

	promoted, err := s.enrollments.PromoteCohort(ctx, source.ID, target.ID, nextYear.ID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrAlreadyPromoted, "")
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNoStudents, "")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to promote class")
		}
	}

	s.logger.Info("class promoted",
		zap.Int64("source_class_id", source.ID),
		zap.Int64("target_class_id", target.ID),
		zap.Int64("target_year_id", nextYear.ID),
		zap.Int("promoted", promoted))

	return &models.PromotionResult{
		PromotedCount: promoted,
		TargetClassID: target.ID,
		TargetYearID:  nextYear.ID,
	}, nil
}
