package models

import "time"

// FeeStructure defines the amount owed per class level for a session.
type FeeStructure struct {
	ClassLevel     int     `db:"class_level" json:"class_level"`
	AcademicYearID int64   `db:"academic_year_id" json:"academic_year_id"`
	TotalAmount    float64 `db:"total_amount" json:"total_amount"`
}

// FeeAssignment is the total owed by one enrollment for its year. One
// assignment per enrollment; re-assigning updates the amount in place.
type FeeAssignment struct {
	ID           int64     `db:"assignment_id" json:"assignment_id"`
	EnrollmentID int64     `db:"enrollment_id" json:"enrollment_id"`
	TotalAmount  float64   `db:"total_amount" json:"total_amount"`
	AssignedDate time.Time `db:"assigned_date" json:"assigned_date"`
}

// FeePayment is an immutable ledger line for one payment.
type FeePayment struct {
	ID           int64     `db:"payment_id" json:"payment_id"`
	EnrollmentID int64     `db:"enrollment_id" json:"enrollment_id"`
	AmountPaid   float64   `db:"amount_paid" json:"amount_paid"`
	PaymentDate  time.Time `db:"payment_date" json:"payment_date"`
	PaymentMode  string    `db:"payment_mode" json:"payment_mode"`
	ReceiptNo    string    `db:"receipt_no" json:"receipt_no"`
}

// FeeStatus is the derived balance for one enrollment. Pending is always
// computed as total minus the payment sum, never stored.
type FeeStatus struct {
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	Paid        float64 `db:"paid" json:"paid"`
	Pending     float64 `db:"pending" json:"pending"`
}

// StudentFeeRow is one line of a class or defaulter fee report.
type StudentFeeRow struct {
	EnrollmentID int64   `db:"enrollment_id" json:"enrollment_id"`
	RegNo        string  `db:"reg_no" json:"reg_no"`
	Name         string  `db:"name" json:"name"`
	ClassLevel   *int    `db:"class_level" json:"class_level,omitempty"`
	Division     *string `db:"division" json:"division,omitempty"`
	TotalAmount  float64 `db:"total_amount" json:"total_amount"`
	Paid         float64 `db:"paid" json:"paid"`
	Pending      float64 `db:"pending" json:"pending"`
}

// FeeSummary is the school-level collection overview for a session.
type FeeSummary struct {
	TotalFees *float64 `db:"total_fees" json:"total_fees"`
	Collected *float64 `db:"collected" json:"collected"`
	Pending   *float64 `db:"pending" json:"pending"`
}

// ReceiptDetail is one ledger line with the student and class context
// printed on its receipt.
type ReceiptDetail struct {
	ReceiptNo    string    `db:"receipt_no" json:"receipt_no"`
	AmountPaid   float64   `db:"amount_paid" json:"amount_paid"`
	PaymentDate  time.Time `db:"payment_date" json:"payment_date"`
	PaymentMode  string    `db:"payment_mode" json:"payment_mode"`
	EnrollmentID int64     `db:"enrollment_id" json:"enrollment_id"`
	RegNo        string    `db:"reg_no" json:"reg_no"`
	StudentName  string    `db:"student_name" json:"student_name"`
	ClassLevel   int       `db:"class_level" json:"class_level"`
	Division     string    `db:"division" json:"division"`
}

// UpsertFeeStructureRequest creates or updates a fee structure row.
type UpsertFeeStructureRequest struct {
	ClassLevel     int     `json:"class_level" validate:"required,min=1"`
	AcademicYearID int64   `json:"academic_year_id" validate:"required"`
	TotalAmount    float64 `json:"total_amount" validate:"required,gt=0"`
}

// AssignFeeRequest assigns a fee total to one enrollment.
type AssignFeeRequest struct {
	EnrollmentID int64   `json:"enrollment_id" validate:"required"`
	TotalAmount  float64 `json:"total_amount" validate:"required,gt=0"`
}

// AssignClassFeesRequest applies the session fee structure to every
// active enrollment in a class.
type AssignClassFeesRequest struct {
	ClassID        int64 `json:"class_id" validate:"required"`
	AcademicYearID int64 `json:"academic_year_id" validate:"required"`
}

// RecordPaymentRequest appends a payment ledger line.
type RecordPaymentRequest struct {
	EnrollmentID int64   `json:"enrollment_id" validate:"required"`
	AmountPaid   float64 `json:"amount_paid" validate:"required,gt=0"`
	PaymentDate  string  `json:"payment_date" validate:"required"`
	PaymentMode  string  `json:"payment_mode" validate:"required,oneof=cash card upi cheque bank_transfer"`
}

// RecordPaymentResponse returns the generated receipt number.
type RecordPaymentResponse struct {
	ReceiptNo string `json:"receipt_no"`
}

// BulkAssignResult reports how many enrollments a bulk fee assignment touched.
type BulkAssignResult struct {
	AssignedCount int `json:"assigned_count"`
}
