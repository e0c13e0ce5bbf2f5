package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/repository"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockAcademicYearRepo struct {
	created   *models.AcademicYear
	createErr error
}

func (m *mockAcademicYearRepo) Create(ctx context.Context, year *models.AcademicYear) error {
	if m.createErr != nil {
		return m.createErr
	}
	year.ID = 3
	m.created = year
	return nil
}

func (m *mockAcademicYearRepo) List(ctx context.Context) ([]models.AcademicYear, error) {
	return nil, nil
}

func (m *mockAcademicYearRepo) FindByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return nil, sql.ErrNoRows
}

func (m *mockAcademicYearRepo) Close(ctx context.Context, id int64) error {
	return nil
}

func (m *mockAcademicYearRepo) Activate(ctx context.Context, id int64) error {
	return sql.ErrNoRows
}

func (m *mockAcademicYearRepo) FindActive(ctx context.Context) (*models.AcademicYear, error) {
	return nil, sql.ErrNoRows
}

func TestAcademicYearServiceCreate(t *testing.T) {
	repo := &mockAcademicYearRepo{}
	svc := NewAcademicYearService(repo, nil, nil)

	year, err := svc.Create(context.Background(), models.CreateAcademicYearRequest{
		YearName:  "2026-2027",
		StartDate: "2026-06-01",
		EndDate:   "2027-04-30",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), year.ID)
	assert.False(t, year.IsActive)
	assert.False(t, year.IsClosed)
}

func TestAcademicYearServiceCreateEndBeforeStart(t *testing.T) {
	svc := NewAcademicYearService(&mockAcademicYearRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateAcademicYearRequest{
		YearName:  "2026-2027",
		StartDate: "2027-04-30",
		EndDate:   "2026-06-01",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAcademicYearServiceCreateDuplicateName(t *testing.T) {
	repo := &mockAcademicYearRepo{createErr: fmt.Errorf("create year: %w", repository.ErrDuplicate)}
	svc := NewAcademicYearService(repo, nil, nil)

	_, err := svc.Create(context.Background(), models.CreateAcademicYearRequest{
		YearName:  "2026-2027",
		StartDate: "2026-06-01",
		EndDate:   "2027-04-30",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAcademicYearServiceActivateClosedYear(t *testing.T) {
	svc := NewAcademicYearService(&mockAcademicYearRepo{}, nil, nil)

	err := svc.Activate(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAcademicYearServiceActiveNone(t *testing.T) {
	svc := NewAcademicYearService(&mockAcademicYearRepo{}, nil, nil)

	_, err := svc.Active(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
