package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edulite/school-api/internal/models"
)

// FeeRepository persists fee structures, per-enrollment assignments and
// the append-only payment ledger.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs the repository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// UpsertStructure creates or updates the fee amount for a class level in
// a session.
func (r *FeeRepository) UpsertStructure(ctx context.Context, req *models.UpsertFeeStructureRequest) error {
	const query = `INSERT INTO fee_structures (class_level, academic_year_id, total_amount)
        VALUES ($1, $2, $3)
        ON CONFLICT (class_level, academic_year_id)
        DO UPDATE SET total_amount = EXCLUDED.total_amount`
	if _, err := r.db.ExecContext(ctx, query, req.ClassLevel, req.AcademicYearID, req.TotalAmount); err != nil {
		return fmt.Errorf("upsert fee structure: %w", err)
	}
	return nil
}

// ListStructures returns all fee structures of a session.
func (r *FeeRepository) ListStructures(ctx context.Context, yearID int64) ([]models.FeeStructure, error) {
	const query = `SELECT class_level, academic_year_id, total_amount
        FROM fee_structures WHERE academic_year_id = $1 ORDER BY class_level`
	var structures []models.FeeStructure
	if err := r.db.SelectContext(ctx, &structures, query, yearID); err != nil {
		return nil, fmt.Errorf("list fee structures: %w", err)
	}
	return structures, nil
}

// UpsertAssignment sets the total owed by one enrollment. Re-assigning
// updates the amount in place; the payment ledger is untouched.
func (r *FeeRepository) UpsertAssignment(ctx context.Context, enrollmentID int64, totalAmount float64) error {
	const query = `INSERT INTO student_fee_assignments (enrollment_id, total_amount, assigned_date)
        VALUES ($1, $2, $3)
        ON CONFLICT (enrollment_id)
        DO UPDATE SET total_amount = EXCLUDED.total_amount, assigned_date = EXCLUDED.assigned_date`
	if _, err := r.db.ExecContext(ctx, query, enrollmentID, totalAmount, time.Now()); err != nil {
		return fmt.Errorf("upsert fee assignment: %w", err)
	}
	return nil
}

// BulkAssignClass applies the session's fee structure to every active
// enrollment of the class in one statement and returns how many rows it
// touched.
func (r *FeeRepository) BulkAssignClass(ctx context.Context, classID, yearID int64) (int, error) {
	const query = `INSERT INTO student_fee_assignments (enrollment_id, total_amount, assigned_date)
        SELECT se.enrollment_id, fs.total_amount, $3
        FROM student_enrollments se
        JOIN classes c ON c.class_id = se.class_id
        JOIN fee_structures fs ON fs.class_level = c.class_level AND fs.academic_year_id = $2
        WHERE se.class_id = $1 AND se.status = $4
        ON CONFLICT (enrollment_id)
        DO UPDATE SET total_amount = EXCLUDED.total_amount, assigned_date = EXCLUDED.assigned_date`
	res, err := r.db.ExecContext(ctx, query, classID, yearID, time.Now(), models.EnrollmentStatusActive)
	if err != nil {
		return 0, fmt.Errorf("bulk assign class fees: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk assign rows: %w", err)
	}
	return int(affected), nil
}

// InsertPayment appends a ledger line. Payments are never edited or
// deleted; corrections are new lines.
func (r *FeeRepository) InsertPayment(ctx context.Context, enrollmentID int64, amount float64, date time.Time, mode, receiptNo string) (int64, error) {
	const query = `INSERT INTO fee_payments (enrollment_id, amount_paid, payment_date, payment_mode, receipt_no)
        VALUES ($1, $2, $3, $4, $5) RETURNING payment_id`
	var paymentID int64
	if err := r.db.GetContext(ctx, &paymentID, query, enrollmentID, amount, date, mode, receiptNo); err != nil {
		return 0, fmt.Errorf("insert fee payment: %w", mapConstraintError(err))
	}
	return paymentID, nil
}

// StatusByEnrollment derives the enrollment's balance. Pending is always
// total minus the payment sum, never stored.
func (r *FeeRepository) StatusByEnrollment(ctx context.Context, enrollmentID int64) (*models.FeeStatus, error) {
	const query = `SELECT sfa.total_amount,
            COALESCE(SUM(fp.amount_paid), 0) AS paid,
            sfa.total_amount - COALESCE(SUM(fp.amount_paid), 0) AS pending
        FROM student_fee_assignments sfa
        LEFT JOIN fee_payments fp ON fp.enrollment_id = sfa.enrollment_id
        WHERE sfa.enrollment_id = $1
        GROUP BY sfa.total_amount`
	var status models.FeeStatus
	if err := r.db.GetContext(ctx, &status, query, enrollmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("fee status: %w", err)
	}
	return &status, nil
}

// PaymentsByEnrollment returns the enrollment's ledger, newest first.
func (r *FeeRepository) PaymentsByEnrollment(ctx context.Context, enrollmentID int64) ([]models.FeePayment, error) {
	const query = `SELECT payment_id, enrollment_id, amount_paid, payment_date, payment_mode, receipt_no
        FROM fee_payments WHERE enrollment_id = $1 ORDER BY payment_date DESC, payment_id DESC`
	var payments []models.FeePayment
	if err := r.db.SelectContext(ctx, &payments, query, enrollmentID); err != nil {
		return nil, fmt.Errorf("list fee payments: %w", err)
	}
	return payments, nil
}

// ReceiptDetail joins one ledger line with student and class context for
// receipt rendering.
func (r *FeeRepository) ReceiptDetail(ctx context.Context, receiptNo string) (*models.ReceiptDetail, error) {
	const query = `SELECT fp.receipt_no, fp.amount_paid, fp.payment_date, fp.payment_mode, fp.enrollment_id,
            sm.reg_no, sm.fname || ' ' || COALESCE(sm.lname, '') AS student_name,
            c.class_level, c.division
        FROM fee_payments fp
        JOIN student_enrollments se ON se.enrollment_id = fp.enrollment_id
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        JOIN classes c ON c.class_id = se.class_id
        WHERE fp.receipt_no = $1`
	var detail models.ReceiptDetail
	if err := r.db.GetContext(ctx, &detail, query, receiptNo); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("receipt detail: %w", err)
	}
	return &detail, nil
}

// ClassReport returns per-student balances for one class.
func (r *FeeRepository) ClassReport(ctx context.Context, classID int64) ([]models.StudentFeeRow, error) {
	const query = `SELECT se.enrollment_id, sm.reg_no,
            sm.fname || ' ' || COALESCE(sm.lname, '') AS name,
            sfa.total_amount,
            COALESCE(SUM(fp.amount_paid), 0) AS paid,
            sfa.total_amount - COALESCE(SUM(fp.amount_paid), 0) AS pending
        FROM student_enrollments se
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        JOIN student_fee_assignments sfa ON sfa.enrollment_id = se.enrollment_id
        LEFT JOIN fee_payments fp ON fp.enrollment_id = se.enrollment_id
        WHERE se.class_id = $1
        GROUP BY se.enrollment_id, sm.reg_no, sm.fname, sm.lname, sfa.total_amount
        ORDER BY se.roll_no`
	var rows []models.StudentFeeRow
	if err := r.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, fmt.Errorf("class fee report: %w", err)
	}
	return rows, nil
}

// Defaulters returns every enrollment of the session with fees still
// pending.
func (r *FeeRepository) Defaulters(ctx context.Context, yearID int64) ([]models.StudentFeeRow, error) {
	const query = `SELECT se.enrollment_id, sm.reg_no,
            sm.fname || ' ' || COALESCE(sm.lname, '') AS name,
            c.class_level, c.division,
            sfa.total_amount,
            COALESCE(SUM(fp.amount_paid), 0) AS paid,
            sfa.total_amount - COALESCE(SUM(fp.amount_paid), 0) AS pending
        FROM student_enrollments se
        JOIN student_master sm ON sm.student_master_id = se.student_master_id
        JOIN classes c ON c.class_id = se.class_id
        JOIN student_fee_assignments sfa ON sfa.enrollment_id = se.enrollment_id
        LEFT JOIN fee_payments fp ON fp.enrollment_id = se.enrollment_id
        WHERE se.academic_year_id = $1
        GROUP BY se.enrollment_id, sm.reg_no, sm.fname, sm.lname, c.class_level, c.division, sfa.total_amount
        HAVING sfa.total_amount - COALESCE(SUM(fp.amount_paid), 0) > 0
        ORDER BY c.class_level, c.division, se.roll_no`
	var rows []models.StudentFeeRow
	if err := r.db.SelectContext(ctx, &rows, query, yearID); err != nil {
		return nil, fmt.Errorf("fee defaulters: %w", err)
	}
	return rows, nil
}

// Summary returns the session's school-level collection overview. All
// fields are NULL when the session has no assignments yet.
func (r *FeeRepository) Summary(ctx context.Context, yearID int64) (*models.FeeSummary, error) {
	const query = `SELECT SUM(sfa.total_amount) AS total_fees,
            SUM(p.paid) AS collected,
            SUM(sfa.total_amount) - SUM(p.paid) AS pending
        FROM student_fee_assignments sfa
        JOIN student_enrollments se ON se.enrollment_id = sfa.enrollment_id
        LEFT JOIN LATERAL (
            SELECT COALESCE(SUM(fp.amount_paid), 0) AS paid
            FROM fee_payments fp WHERE fp.enrollment_id = sfa.enrollment_id
        ) p ON TRUE
        WHERE se.academic_year_id = $1`
	var summary models.FeeSummary
	if err := r.db.GetContext(ctx, &summary, query, yearID); err != nil {
		return nil, fmt.Errorf("fee summary: %w", err)
	}
	return &summary, nil
}
