package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockDashboardRepo struct {
	admin      *models.AdminDashboard
	classes    []models.TeacherClass
	adminCalls int
}

func (m *mockDashboardRepo) AdminCounts(ctx context.Context, yearID int64) (*models.AdminDashboard, error) {
	m.adminCalls++
	return m.admin, nil
}

func (m *mockDashboardRepo) TeacherClasses(ctx context.Context, teacherID int64) ([]models.TeacherClass, error) {
	return m.classes, nil
}

func (m *mockDashboardRepo) ClassRoster(ctx context.Context, classID int64) ([]models.ClassStudent, error) {
	return nil, nil
}

func (m *mockDashboardRepo) StudentSummary(ctx context.Context, userID int64) (*models.StudentDashboard, error) {
	return nil, nil
}

type memoryCache struct {
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	c.entries = make(map[string][]byte)
	return nil
}

type recordingMetrics struct {
	hits   int
	misses int
}

func (m *recordingMetrics) RecordCacheOperation(hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func TestDashboardServiceAdminCachesResult(t *testing.T) {
	repo := &mockDashboardRepo{admin: &models.AdminDashboard{TotalClasses: 10, TotalStudents: 320}}
	cache := newMemoryCache()
	metrics := &recordingMetrics{}
	svc := NewDashboardService(repo, cache, metrics, nil, time.Minute)

	first, err := svc.Admin(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 320, first.TotalStudents)
	assert.Equal(t, 1, repo.adminCalls)

	second, err := svc.Admin(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 320, second.TotalStudents)
	// Served from cache, no second repository trip.
	assert.Equal(t, 1, repo.adminCalls)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestDashboardServiceInvalidateDropsCache(t *testing.T) {
	repo := &mockDashboardRepo{admin: &models.AdminDashboard{TotalStudents: 320}}
	cache := newMemoryCache()
	svc := NewDashboardService(repo, cache, nil, nil, time.Minute)

	_, err := svc.Admin(context.Background(), 1)
	require.NoError(t, err)

	svc.Invalidate(context.Background())
	require.Contains(t, cache.deleted, "dashboard:*")

	_, err = svc.Admin(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.adminCalls)
}

func TestDashboardServiceTeacherAggregates(t *testing.T) {
	repo := &mockDashboardRepo{classes: []models.TeacherClass{
		{ClassID: 1, StudentCount: 30},
		{ClassID: 2, StudentCount: 25},
	}}
	svc := NewDashboardService(repo, newMemoryCache(), nil, nil, time.Minute)

	subjects := []models.TeacherSubject{{SubjectID: 1}, {SubjectID: 2}, {SubjectID: 3}}
	dashboard, err := svc.Teacher(context.Background(), 4, subjects)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.TotalClasses)
	assert.Equal(t, 3, dashboard.TotalSubjects)
	assert.Equal(t, 55, dashboard.TotalStudents)
}
