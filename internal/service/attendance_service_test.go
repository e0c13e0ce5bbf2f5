package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockAttendanceRepo struct {
	records     []models.AttendanceRecord
	lastDate    time.Time
	lastEntries []models.AttendanceEntry
}

func (m *mockAttendanceRepo) ReplaceForDate(ctx context.Context, date time.Time, entries []models.AttendanceEntry) error {
	m.lastDate = date
	m.lastEntries = entries
	return nil
}

func (m *mockAttendanceRepo) ClassRegister(ctx context.Context, classID int64, date time.Time) ([]models.ClassAttendanceRow, error) {
	return nil, nil
}

func (m *mockAttendanceRepo) MonthRecords(ctx context.Context, enrollmentID int64, monthStart time.Time) ([]models.AttendanceRecord, error) {
	return m.records, nil
}

func TestAttendanceServiceMark(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, nil, nil)

	err := svc.Mark(context.Background(), models.MarkAttendanceRequest{
		AttendanceDate: "2026-07-01",
		Students: []models.AttendanceEntry{
			{EnrollmentID: 1, Status: models.AttendancePresent},
			{EnrollmentID: 2, Status: models.AttendanceAbsent},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, time.July, repo.lastDate.Month())
	assert.Len(t, repo.lastEntries, 2)
}

func TestAttendanceServiceMarkBadDate(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil, nil)

	err := svc.Mark(context.Background(), models.MarkAttendanceRequest{
		AttendanceDate: "01-07-2026",
		Students:       []models.AttendanceEntry{{EnrollmentID: 1, Status: models.AttendancePresent}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAttendanceServiceMonthlyAggregates(t *testing.T) {
	repo := &mockAttendanceRepo{records: []models.AttendanceRecord{
		{EnrollmentID: 7, Status: models.AttendancePresent},
		{EnrollmentID: 7, Status: models.AttendancePresent},
		{EnrollmentID: 7, Status: models.AttendanceAbsent},
	}}
	svc := NewAttendanceService(repo, nil, nil)

	summary, err := svc.Monthly(context.Background(), 7, "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalDays)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Len(t, summary.Records, 3)
}

func TestAttendanceServiceMonthlyBadMonth(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil, nil)

	_, err := svc.Monthly(context.Background(), 7, "July 2026")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
