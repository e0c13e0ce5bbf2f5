package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type dashboardRepository interface {
	AdminCounts(ctx context.Context, yearID int64) (*models.AdminDashboard, error)
	TeacherClasses(ctx context.Context, teacherID int64) ([]models.TeacherClass, error)
	ClassRoster(ctx context.Context, classID int64) ([]models.ClassStudent, error)
	StudentSummary(ctx context.Context, userID int64) (*models.StudentDashboard, error)
}

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool)
}

// DashboardService builds role landing pages, caching the expensive
// aggregates in Redis.
type DashboardService struct {
	repo    dashboardRepository
	cache   dashboardCache
	metrics cacheMetrics
	logger  *zap.Logger
	ttl     time.Duration
}

// NewDashboardService constructs the service.
func NewDashboardService(repo dashboardRepository, cache dashboardCache, metrics cacheMetrics, logger *zap.Logger, ttl time.Duration) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Admin returns the admin landing page counts for one session.
func (s *DashboardService) Admin(ctx context.Context, yearID int64) (*models.AdminDashboard, error) {
	key := fmt.Sprintf("dashboard:admin:%d", yearID)

	var cached models.AdminDashboard
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.record(true)
		return &cached, nil
	} else if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
	}
	s.record(false)

	dashboard, err := s.repo.AdminCounts(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build admin dashboard")
	}

	if err := s.cache.Set(ctx, key, dashboard, s.ttl); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}

	return dashboard, nil
}

// TeacherClasses returns the teacher's active-year roster.
func (s *DashboardService) TeacherClasses(ctx context.Context, teacherID int64) ([]models.TeacherClass, error) {
	classes, err := s.repo.TeacherClasses(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher classes")
	}
	return classes, nil
}

// Teacher summarises the teacher's active-year workload.
func (s *DashboardService) Teacher(ctx context.Context, teacherID int64, subjects []models.TeacherSubject) (*models.TeacherDashboard, error) {
	classes, err := s.repo.TeacherClasses(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build teacher dashboard")
	}

	dashboard := &models.TeacherDashboard{
		TotalClasses:  len(classes),
		TotalSubjects: len(subjects),
	}
	for _, class := range classes {
		dashboard.TotalStudents += class.StudentCount
	}
	return dashboard, nil
}

// ClassRoster returns the active students of one class.
func (s *DashboardService) ClassRoster(ctx context.Context, classID int64) ([]models.ClassStudent, error) {
	roster, err := s.repo.ClassRoster(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class roster")
	}
	return roster, nil
}

// Student returns the student's landing page summary.
func (s *DashboardService) Student(ctx context.Context, userID int64) (*models.StudentDashboard, error) {
	dashboard, err := s.repo.StudentSummary(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "no enrollment in the active year")
	}
	return dashboard, nil
}

// Invalidate drops all cached dashboards. Callers invoke it after bulk
// writes like promotion.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPattern(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) record(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}
