package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type attendanceRepository interface {
	ReplaceForDate(ctx context.Context, date time.Time, entries []models.AttendanceEntry) error
	ClassRegister(ctx context.Context, classID int64, date time.Time) ([]models.ClassAttendanceRow, error)
	MonthRecords(ctx context.Context, enrollmentID int64, monthStart time.Time) ([]models.AttendanceRecord, error)
}

// AttendanceService manages daily attendance marking and views.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// Mark records the class's marks for one date. Marking the same date
// again replaces the earlier marks for the listed enrollments.
func (s *AttendanceService) Mark(ctx context.Context, req models.MarkAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "attendance_date must be YYYY-MM-DD")
	}

	if err := s.repo.ReplaceForDate(ctx, date, req.Students); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}

	s.logger.Info("attendance marked",
		zap.String("date", req.AttendanceDate),
		zap.Int("students", len(req.Students)))

	return nil
}

// ClassRegister returns the class's marks for one date.
func (s *AttendanceService) ClassRegister(ctx context.Context, classID int64, dateStr string) ([]models.ClassAttendanceRow, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	rows, err := s.repo.ClassRegister(ctx, classID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance register")
	}
	return rows, nil
}

// Monthly aggregates one enrollment's marks for a month addressed as
// YYYY-MM.
func (s *AttendanceService) Monthly(ctx context.Context, enrollmentID int64, month string) (*models.MonthlyAttendance, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be YYYY-MM")
	}

	records, err := s.repo.MonthRecords(ctx, enrollmentID, monthStart)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load monthly attendance")
	}

	summary := &models.MonthlyAttendance{Records: records}
	for _, record := range records {
		summary.TotalDays++
		if record.Status == models.AttendancePresent {
			summary.PresentDays++
		} else {
			summary.AbsentDays++
		}
	}
	return summary, nil
}
