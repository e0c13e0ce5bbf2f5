package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type feeRepository interface {
	UpsertStructure(ctx context.Context, req *models.UpsertFeeStructureRequest) error
	ListStructures(ctx context.Context, yearID int64) ([]models.FeeStructure, error)
	UpsertAssignment(ctx context.Context, enrollmentID int64, totalAmount float64) error
	BulkAssignClass(ctx context.Context, classID, yearID int64) (int, error)
	InsertPayment(ctx context.Context, enrollmentID int64, amount float64, date time.Time, mode, receiptNo string) (int64, error)
	StatusByEnrollment(ctx context.Context, enrollmentID int64) (*models.FeeStatus, error)
	PaymentsByEnrollment(ctx context.Context, enrollmentID int64) ([]models.FeePayment, error)
	ReceiptDetail(ctx context.Context, receiptNo string) (*models.ReceiptDetail, error)
	ClassReport(ctx context.Context, classID int64) ([]models.StudentFeeRow, error)
	Defaulters(ctx context.Context, yearID int64) ([]models.StudentFeeRow, error)
	Summary(ctx context.Context, yearID int64) (*models.FeeSummary, error)
}

type feeEnrollmentRepository interface {
	CountActiveByClass(ctx context.Context, classID int64) (int, error)
}

// FeeService manages fee structures, assignments and the payment ledger.
// Balances are always derived from the ledger, never stored.
type FeeService struct {
	repo        feeRepository
	enrollments feeEnrollmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewFeeService constructs the service.
func NewFeeService(repo feeRepository, enrollments feeEnrollmentRepository, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeeService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// UpsertStructure creates or updates the fee amount for a class level.
func (s *FeeService) UpsertStructure(ctx context.Context, req models.UpsertFeeStructureRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee structure payload")
	}
	if err := s.repo.UpsertStructure(ctx, &req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save fee structure")
	}
	return nil
}

// ListStructures returns the session's fee structures.
func (s *FeeService) ListStructures(ctx context.Context, yearID int64) ([]models.FeeStructure, error) {
	structures, err := s.repo.ListStructures(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fee structures")
	}
	return structures, nil
}

// Assign sets the total owed by one enrollment.
func (s *FeeService) Assign(ctx context.Context, req models.AssignFeeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee assignment payload")
	}
	if err := s.repo.UpsertAssignment(ctx, req.EnrollmentID, req.TotalAmount); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign fee")
	}
	return nil
}

// AssignClass applies the session's fee structure to every active
// enrollment of the class.
func (s *FeeService) AssignClass(ctx context.Context, req models.AssignClassFeesRequest) (*models.BulkAssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk assignment payload")
	}

	active, err := s.enrollments.CountActiveByClass(ctx, req.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count cohort")
	}
	if active == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoStudents, "")
	}

	assigned, err := s.repo.BulkAssignClass(ctx, req.ClassID, req.AcademicYearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign class fees")
	}
	if assigned == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no fee structure for this class level")
	}

	s.logger.Info("class fees assigned",
		zap.Int64("class_id", req.ClassID),
		zap.Int("assigned", assigned))

	return &models.BulkAssignResult{AssignedCount: assigned}, nil
}

// RecordPayment appends a ledger line and returns the generated receipt
// number. Receipts are collision resistant so two accountants recording
// at once never clash.
func (s *FeeService) RecordPayment(ctx context.Context, req models.RecordPaymentRequest) (*models.RecordPaymentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	date, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment_date must be YYYY-MM-DD")
	}

	status, err := s.repo.StatusByEnrollment(ctx, req.EnrollmentID)
	if err != nil {
		return nil, notFoundOr(err, "no fee assignment for this enrollment")
	}
	if req.AmountPaid > status.Pending {
		return nil, appErrors.Clone(appErrors.ErrValidation, "payment exceeds pending balance")
	}

	receiptNo := "RCPT-" + uuid.NewString()
	if _, err := s.repo.InsertPayment(ctx, req.EnrollmentID, req.AmountPaid, date, req.PaymentMode, receiptNo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	s.logger.Info("fee payment recorded",
		zap.Int64("enrollment_id", req.EnrollmentID),
		zap.Float64("amount", req.AmountPaid),
		zap.String("receipt_no", receiptNo))

	return &models.RecordPaymentResponse{ReceiptNo: receiptNo}, nil
}

// Status returns the derived balance for one enrollment.
func (s *FeeService) Status(ctx context.Context, enrollmentID int64) (*models.FeeStatus, error) {
	status, err := s.repo.StatusByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, notFoundOr(err, "no fee assignment for this enrollment")
	}
	return status, nil
}

// Payments returns the enrollment's ledger.
func (s *FeeService) Payments(ctx context.Context, enrollmentID int64) ([]models.FeePayment, error) {
	payments, err := s.repo.PaymentsByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// ReceiptDetail returns one ledger line with student and class context.
func (s *FeeService) ReceiptDetail(ctx context.Context, receiptNo string) (*models.ReceiptDetail, error) {
	detail, err := s.repo.ReceiptDetail(ctx, receiptNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "receipt not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load receipt")
	}
	return detail, nil
}

// ClassReport returns per-student balances for one class.
func (s *FeeService) ClassReport(ctx context.Context, classID int64) ([]models.StudentFeeRow, error) {
	rows, err := s.repo.ClassReport(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build class fee report")
	}
	return rows, nil
}

// Defaulters returns the session's enrollments with fees still pending.
func (s *FeeService) Defaulters(ctx context.Context, yearID int64) ([]models.StudentFeeRow, error) {
	rows, err := s.repo.Defaulters(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list defaulters")
	}
	return rows, nil
}

// Summary returns the session's collection overview.
func (s *FeeService) Summary(ctx context.Context, yearID int64) (*models.FeeSummary, error) {
	summary, err := s.repo.Summary(ctx, yearID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build fee summary")
	}
	return summary, nil
}
