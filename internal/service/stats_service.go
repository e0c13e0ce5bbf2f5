package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type statsStudentRepository interface {
	GenderCounts(ctx context.Context, yearID int64) ([]models.GenderCount, error)
}

type statsEmployeeRepository interface {
	TeacherWorkloads(ctx context.Context, yearID int64) ([]models.TeacherWorkload, error)
}

// StatsService builds the principal's read-only statistics views.
type StatsService struct {
	students  statsStudentRepository
	employees statsEmployeeRepository
	logger    *zap.Logger
}

// NewStatsService constructs the service.
func NewStatsService(students statsStudentRepository, employees statsEmployeeRepository, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{students: students, employees: employees, logger: logger}
}

// GenderCounts returns the gender split of active students in a session.
func (s *StatsService) GenderCounts(ctx context.Context, yearID int64) ([]models.GenderCount, error) {
	counts, err := s.students.GenderCounts(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count genders")
	}
	return counts, nil
}

// TeacherWorkloads counts subjects taught per teacher in a session.
func (s *StatsService) TeacherWorkloads(ctx context.Context, yearID int64) ([]models.TeacherWorkload, error) {
	workloads, err := s.employees.TeacherWorkloads(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute workloads")
	}
	return workloads, nil
}
