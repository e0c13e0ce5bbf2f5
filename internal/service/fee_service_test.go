package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockFeeRepo struct {
	status       *models.FeeStatus
	statusErr    error
	assigned     int
	payments     []models.FeePayment
	lastReceipt  string
	lastAmount   float64
	lastDate     time.Time
	insertCalled bool
}

func (m *mockFeeRepo) UpsertStructure(ctx context.Context, req *models.UpsertFeeStructureRequest) error {
	return nil
}

func (m *mockFeeRepo) ListStructures(ctx context.Context, yearID int64) ([]models.FeeStructure, error) {
	return nil, nil
}

func (m *mockFeeRepo) UpsertAssignment(ctx context.Context, enrollmentID int64, totalAmount float64) error {
	return nil
}

func (m *mockFeeRepo) BulkAssignClass(ctx context.Context, classID, yearID int64) (int, error) {
	return m.assigned, nil
}

func (m *mockFeeRepo) InsertPayment(ctx context.Context, enrollmentID int64, amount float64, date time.Time, mode, receiptNo string) (int64, error) {
	m.insertCalled = true
	m.lastReceipt = receiptNo
	m.lastAmount = amount
	m.lastDate = date
	return 1, nil
}

func (m *mockFeeRepo) StatusByEnrollment(ctx context.Context, enrollmentID int64) (*models.FeeStatus, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.status, nil
}

func (m *mockFeeRepo) PaymentsByEnrollment(ctx context.Context, enrollmentID int64) ([]models.FeePayment, error) {
	return m.payments, nil
}

func (m *mockFeeRepo) ReceiptDetail(ctx context.Context, receiptNo string) (*models.ReceiptDetail, error) {
	return nil, sql.ErrNoRows
}

func (m *mockFeeRepo) ClassReport(ctx context.Context, classID int64) ([]models.StudentFeeRow, error) {
	return nil, nil
}

func (m *mockFeeRepo) Defaulters(ctx context.Context, yearID int64) ([]models.StudentFeeRow, error) {
	return nil, nil
}

func (m *mockFeeRepo) Summary(ctx context.Context, yearID int64) (*models.FeeSummary, error) {
	return nil, nil
}

type mockFeeEnrollmentRepo struct {
	activeCount int
}

func (m *mockFeeEnrollmentRepo) CountActiveByClass(ctx context.Context, classID int64) (int, error) {
	return m.activeCount, nil
}

func TestFeeServiceRecordPayment(t *testing.T) {
	repo := &mockFeeRepo{status: &models.FeeStatus{TotalAmount: 5000, Paid: 2000, Pending: 3000}}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{}, nil, nil)

	res, err := svc.RecordPayment(context.Background(), models.RecordPaymentRequest{
		EnrollmentID: 7,
		AmountPaid:   1500,
		PaymentDate:  "2026-04-10",
		PaymentMode:  "cash",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ReceiptNo, "RCPT-"))
	assert.Equal(t, res.ReceiptNo, repo.lastReceipt)
	assert.Equal(t, 1500.0, repo.lastAmount)
	assert.Equal(t, 2026, repo.lastDate.Year())
}

func TestFeeServiceRecordPaymentOverpayment(t *testing.T) {
	repo := &mockFeeRepo{status: &models.FeeStatus{TotalAmount: 5000, Paid: 4500, Pending: 500}}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{}, nil, nil)

	_, err := svc.RecordPayment(context.Background(), models.RecordPaymentRequest{
		EnrollmentID: 7,
		AmountPaid:   501,
		PaymentDate:  "2026-04-10",
		PaymentMode:  "cash",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.insertCalled)
}

func TestFeeServiceRecordPaymentExactBalance(t *testing.T) {
	repo := &mockFeeRepo{status: &models.FeeStatus{TotalAmount: 5000, Paid: 4500, Pending: 500}}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{}, nil, nil)

	_, err := svc.RecordPayment(context.Background(), models.RecordPaymentRequest{
		EnrollmentID: 7,
		AmountPaid:   500,
		PaymentDate:  "2026-04-10",
		PaymentMode:  "upi",
	})
	require.NoError(t, err)
	assert.True(t, repo.insertCalled)
}

func TestFeeServiceRecordPaymentNoAssignment(t *testing.T) {
	repo := &mockFeeRepo{statusErr: sql.ErrNoRows}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{}, nil, nil)

	_, err := svc.RecordPayment(context.Background(), models.RecordPaymentRequest{
		EnrollmentID: 7,
		AmountPaid:   100,
		PaymentDate:  "2026-04-10",
		PaymentMode:  "cash",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFeeServiceRecordPaymentBadDate(t *testing.T) {
	repo := &mockFeeRepo{status: &models.FeeStatus{Pending: 1000}}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{}, nil, nil)

	_, err := svc.RecordPayment(context.Background(), models.RecordPaymentRequest{
		EnrollmentID: 7,
		AmountPaid:   100,
		PaymentDate:  "10/04/2026",
		PaymentMode:  "cash",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFeeServiceAssignClass(t *testing.T) {
	repo := &mockFeeRepo{assigned: 28}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{activeCount: 28}, nil, nil)

	res, err := svc.AssignClass(context.Background(), models.AssignClassFeesRequest{ClassID: 3, AcademicYearID: 1})
	require.NoError(t, err)
	assert.Equal(t, 28, res.AssignedCount)
}

func TestFeeServiceAssignClassEmpty(t *testing.T) {
	repo := &mockFeeRepo{}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{activeCount: 0}, nil, nil)

	_, err := svc.AssignClass(context.Background(), models.AssignClassFeesRequest{ClassID: 3, AcademicYearID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoStudents.Code, appErrors.FromError(err).Code)
}

func TestFeeServiceAssignClassNoStructure(t *testing.T) {
	repo := &mockFeeRepo{assigned: 0}
	svc := NewFeeService(repo, &mockFeeEnrollmentRepo{activeCount: 12}, nil, nil)

	_, err := svc.AssignClass(context.Background(), models.AssignClassFeesRequest{ClassID: 3, AcademicYearID: 1})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFeeServiceReceiptDetailNotFound(t *testing.T) {
	svc := NewFeeService(&mockFeeRepo{}, &mockFeeEnrollmentRepo{}, nil, nil)

	_, err := svc.ReceiptDetail(context.Background(), "RCPT-missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
