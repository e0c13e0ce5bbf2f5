package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/repository"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockPromotionClassRepo struct {
	byID        map[int64]*models.Class
	byYearLevel map[string]*models.Class
}

func (m *mockPromotionClassRepo) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	class, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

func (m *mockPromotionClassRepo) FindByYearAndLevel(ctx context.Context, yearID int64, level int) (*models.Class, error) {
	class, ok := m.byYearLevel[fmt.Sprintf("%d/%d", yearID, level)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return class, nil
}

type mockPromotionYearRepo struct {
	nextOpen *models.AcademicYear
}

func (m *mockPromotionYearRepo) FindNextOpen(ctx context.Context, afterID int64) (*models.AcademicYear, error) {
	if m.nextOpen == nil {
		return nil, sql.ErrNoRows
	}
	return m.nextOpen, nil
}

type mockPromotionEnrollmentRepo struct {
	activeCount    int
	promotedCount  int
	graduated      int
	graduateCalled bool
	promoted       int
	promoteErr     error
	promoteCalled  bool
	lastSource     int64
	lastTarget     int64
	lastYear       int64
}

func (m *mockPromotionEnrollmentRepo) CountActiveByClass(ctx context.Context, classID int64) (int, error) {
	return m.activeCount, nil
}

func (m *mockPromotionEnrollmentRepo) CountPromotedByClass(ctx context.Context, classID int64) (int, error) {
	return m.promotedCount, nil
}

func (m *mockPromotionEnrollmentRepo) GraduateClass(ctx context.Context, classID int64) (int, error) {
	m.graduateCalled = true
	m.promotedCount += m.graduated
	m.activeCount = 0
	return m.graduated, nil
}

func (m *mockPromotionEnrollmentRepo) PromoteCohort(ctx context.Context, sourceClassID, targetClassID, targetYearID int64, admissionDate time.Time) (int, error) {
	m.promoteCalled = true
	m.lastSource = sourceClassID
	m.lastTarget = targetClassID
	m.lastYear = targetYearID
	if m.promoteErr != nil {
		return 0, m.promoteErr
	}
	m.promotedCount += m.promoted
	m.activeCount = 0
	return m.promoted, nil
}

func newPromotionFixture(active int) (*mockPromotionClassRepo, *mockPromotionYearRepo, *mockPromotionEnrollmentRepo) {
	classes := &mockPromotionClassRepo{
		byID: map[int64]*models.Class{
			5: {ID: 5, ClassLevel: 4, Division: "A", AcademicYearID: 1},
		},
		byYearLevel: map[string]*models.Class{
			"2/5": {ID: 9, ClassLevel: 5, Division: "A", AcademicYearID: 2},
		},
	}
	years := &mockPromotionYearRepo{
		nextOpen: &models.AcademicYear{ID: 2, YearName: "2026-2027"},
	}
	enrollments := &mockPromotionEnrollmentRepo{activeCount: active}
	return classes, years, enrollments
}

func TestPromotionServicePromoteMovesCohort(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(32)
	enrollments.promoted = 32
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	res, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.NoError(t, err)
	assert.Equal(t, 32, res.PromotedCount)
	assert.False(t, res.Graduated)
	assert.Equal(t, int64(9), res.TargetClassID)
	assert.Equal(t, int64(2), res.TargetYearID)
	assert.True(t, enrollments.promoteCalled)
	assert.Equal(t, int64(5), enrollments.lastSource)
	assert.Equal(t, int64(9), enrollments.lastTarget)
	assert.Equal(t, int64(2), enrollments.lastYear)
}

func TestPromotionServicePromoteTerminalClassGraduates(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(18)
	classes.byID[5].ClassLevel = 10
	enrollments.graduated = 18
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	res, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.NoError(t, err)
	assert.True(t, res.Graduated)
	assert.Equal(t, 18, res.PromotedCount)
	assert.Zero(t, res.TargetClassID)
	assert.True(t, enrollments.graduateCalled)
	assert.False(t, enrollments.promoteCalled)
}

func TestPromotionServicePromoteEmptyClass(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(0)
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoStudents.Code, appErrors.FromError(err).Code)
	assert.False(t, enrollments.promoteCalled)
}

func TestPromotionServicePromoteNoNextYear(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(10)
	years.nextOpen = nil
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoNextYear.Code, appErrors.FromError(err).Code)
}

func TestPromotionServicePromoteNoTargetClass(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(10)
	delete(classes.byYearLevel, "2/5")
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoTargetClass.Code, appErrors.FromError(err).Code)
}

func TestPromotionServicePromoteAlreadyPromoted(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(10)
	enrollments.promoteErr = fmt.Errorf("cohort already enrolled: %w", repository.ErrDuplicate)
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyPromoted.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestPromotionServicePromoteSecondRunReportsAlreadyPromoted(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(3)
	enrollments.promoted = 3
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	res, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.NoError(t, err)
	require.Equal(t, 3, res.PromotedCount)

	_, err = svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAlreadyPromoted.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestPromotionServiceGraduateSecondRunReportsAlreadyPromoted(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(18)
	classes.byID[5].ClassLevel = 10
	enrollments.graduated = 18
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.NoError(t, err)

	_, err = svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyPromoted.Code, appErrors.FromError(err).Code)
}

func TestPromotionServicePromoteUnknownClass(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(10)
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{ClassID: 404})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPromotionServicePromoteMissingClassID(t *testing.T) {
	classes, years, enrollments := newPromotionFixture(10)
	svc := NewPromotionService(classes, years, enrollments, nil, nil, 10)

	_, err := svc.Promote(context.Background(), models.PromoteClassRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
