package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	enrollments map[int64]*models.Enrollment
	rollTaken   bool
	changed     bool
	toggled     bool
	changeErr   error
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return enrollment, nil
}

func (m *mockEnrollmentRepo) ListByYear(ctx context.Context, yearID int64) ([]models.EnrollmentDetail, error) {
	return nil, nil
}

func (m *mockEnrollmentRepo) ListByClass(ctx context.Context, classID int64) ([]models.EnrollmentDetail, error) {
	return nil, nil
}

func (m *mockEnrollmentRepo) RollTaken(ctx context.Context, classID int64, rollNo int, excludeID int64) (bool, error) {
	return m.rollTaken, nil
}

func (m *mockEnrollmentRepo) ChangeClassRoll(ctx context.Context, enrollmentID, classID int64, rollNo int) error {
	if m.changeErr != nil {
		return m.changeErr
	}
	m.changed = true
	return nil
}

func (m *mockEnrollmentRepo) ToggleStatus(ctx context.Context, enrollmentID int64) error {
	m.toggled = true
	return nil
}

func (m *mockEnrollmentRepo) CurrentByUserID(ctx context.Context, userID int64) (*models.CurrentEnrollment, error) {
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) HistoryByUserID(ctx context.Context, userID int64) ([]models.EnrollmentHistoryEntry, error) {
	return nil, nil
}

func TestEnrollmentServiceToggleStatusFlips(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: map[int64]*models.Enrollment{
		7: {ID: 7, Status: models.EnrollmentStatusActive},
	}}
	svc := NewEnrollmentService(repo, nil, nil)

	status, err := svc.ToggleStatus(context.Background(), models.ToggleStatusRequest{EnrollmentID: 7})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusInactive, status)
	assert.True(t, repo.toggled)
}

func TestEnrollmentServiceToggleStatusReactivates(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: map[int64]*models.Enrollment{
		7: {ID: 7, Status: models.EnrollmentStatusInactive},
	}}
	svc := NewEnrollmentService(repo, nil, nil)

	status, err := svc.ToggleStatus(context.Background(), models.ToggleStatusRequest{EnrollmentID: 7})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusActive, status)
}

func TestEnrollmentServiceToggleStatusTerminalState(t *testing.T) {
	for _, terminal := range []models.EnrollmentStatus{
		models.EnrollmentStatusPassed,
		models.EnrollmentStatusPromoted,
		models.EnrollmentStatusLeft,
	} {
		repo := &mockEnrollmentRepo{enrollments: map[int64]*models.Enrollment{
			7: {ID: 7, Status: terminal},
		}}
		svc := NewEnrollmentService(repo, nil, nil)

		_, err := svc.ToggleStatus(context.Background(), models.ToggleStatusRequest{EnrollmentID: 7})
		require.Error(t, err, "status %s must not toggle", terminal)
		assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
		assert.False(t, repo.toggled)
	}
}

func TestEnrollmentServiceToggleStatusUnknownEnrollment(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: map[int64]*models.Enrollment{}}
	svc := NewEnrollmentService(repo, nil, nil)

	_, err := svc.ToggleStatus(context.Background(), models.ToggleStatusRequest{EnrollmentID: 99})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceChangeClassRoll(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(repo, nil, nil)

	err := svc.ChangeClassRoll(context.Background(), models.ChangeClassRollRequest{
		EnrollmentID: 7, ClassID: 3, RollNo: 12,
	})
	require.NoError(t, err)
	assert.True(t, repo.changed)
}

func TestEnrollmentServiceChangeClassRollTaken(t *testing.T) {
	repo := &mockEnrollmentRepo{rollTaken: true}
	svc := NewEnrollmentService(repo, nil, nil)

	err := svc.ChangeClassRoll(context.Background(), models.ChangeClassRollRequest{
		EnrollmentID: 7, ClassID: 3, RollNo: 12,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.changed)
}

func TestEnrollmentServiceChangeClassRollCrossYear(t *testing.T) {
	repo := &mockEnrollmentRepo{changeErr: sql.ErrNoRows}
	svc := NewEnrollmentService(repo, nil, nil)

	err := svc.ChangeClassRoll(context.Background(), models.ChangeClassRollRequest{
		EnrollmentID: 7, ClassID: 3, RollNo: 12,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
