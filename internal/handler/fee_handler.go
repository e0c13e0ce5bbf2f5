package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/export"
	"github.com/edulite/school-api/pkg/response"
)

// FeeHandler exposes fee administration and reporting endpoints, shared
// by admin and accountant route groups.
type FeeHandler struct {
	fees *service.FeeService
	pdf  *export.PDFExporter
	csv  *export.CSVExporter
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees *service.FeeService) *FeeHandler {
	return &FeeHandler{
		fees: fees,
		pdf:  export.NewPDFExporter(),
		csv:  export.NewCSVExporter(),
	}
}

// UpsertStructure godoc
// @Summary Create or update a fee structure
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body models.UpsertFeeStructureRequest true "Structure payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/fees/structures [put]
func (h *FeeHandler) UpsertStructure(c *gin.Context) {
	var req models.UpsertFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.fees.UpsertStructure(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "fee structure saved"})
}

// ListStructures godoc
// @Summary List fee structures of a year
// @Tags Fees
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/fees/structures [get]
func (h *FeeHandler) ListStructures(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	structures, err := h.fees.ListStructures(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, structures)
}

// Assign godoc
// @Summary Assign a fee total to one enrollment
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body models.AssignFeeRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/fees/assign [post]
func (h *FeeHandler) Assign(c *gin.Context) {
	var req models.AssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.fees.Assign(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "fee assigned"})
}

// AssignClass godoc
// @Summary Apply the fee structure to a whole class
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body models.AssignClassFeesRequest true "Bulk assignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/fees/assign-class [post]
func (h *FeeHandler) AssignClass(c *gin.Context) {
	var req models.AssignClassFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.fees.AssignClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// RecordPayment godoc
// @Summary Record a fee payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body models.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/payments [post]
func (h *FeeHandler) RecordPayment(c *gin.Context) {
	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.fees.RecordPayment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Status godoc
// @Summary Get an enrollment's fee balance
// @Tags Fees
// @Produce json
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/status/{enrollmentId} [get]
func (h *FeeHandler) Status(c *gin.Context) {
	enrollmentID, ok := paramID(c, "enrollmentId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid enrollment id"))
		return
	}
	status, err := h.fees.Status(c.Request.Context(), enrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// Payments godoc
// @Summary List an enrollment's payment ledger
// @Tags Fees
// @Produce json
// @Param enrollmentId path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/payments/{enrollmentId} [get]
func (h *FeeHandler) Payments(c *gin.Context) {
	enrollmentID, ok := paramID(c, "enrollmentId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid enrollment id"))
		return
	}
	payments, err := h.fees.Payments(c.Request.Context(), enrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, payments)
}

// ClassReport godoc
// @Summary Per-student balances for one class
// @Tags Fees
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/class/{classId} [get]
func (h *FeeHandler) ClassReport(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	rows, err := h.fees.ClassReport(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Defaulters godoc
// @Summary List enrollments with pending fees
// @Tags Fees
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/defaulters [get]
func (h *FeeHandler) Defaulters(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	rows, err := h.fees.Defaulters(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// DefaultersCSV godoc
// @Summary Export the defaulter list as CSV
// @Tags Fees
// @Produce text/csv
// @Param yearId query int true "Academic year ID"
// @Success 200 {string} string "CSV payload"
// @Security BearerAuth
// @Router /accountant/fees/defaulters/export [get]
func (h *FeeHandler) DefaultersCSV(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	rows, err := h.fees.Defaulters(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := export.Dataset{
		Headers: []string{"Reg No", "Name", "Class", "Division", "Total", "Paid", "Pending"},
	}
	for _, row := range rows {
		level, division := "", ""
		if row.ClassLevel != nil {
			level = fmt.Sprintf("%d", *row.ClassLevel)
		}
		if row.Division != nil {
			division = *row.Division
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Reg No":   row.RegNo,
			"Name":     row.Name,
			"Class":    level,
			"Division": division,
			"Total":    fmt.Sprintf("%.2f", row.TotalAmount),
			"Paid":     fmt.Sprintf("%.2f", row.Paid),
			"Pending":  fmt.Sprintf("%.2f", row.Pending),
		})
	}

	payload, err := h.csv.Render(dataset)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="fee_defaulters.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// Summary godoc
// @Summary School-level fee collection overview
// @Tags Fees
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/fees/summary [get]
func (h *FeeHandler) Summary(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	summary, err := h.fees.Summary(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Receipt godoc
// @Summary Download a payment receipt as PDF
// @Tags Fees
// @Produce application/pdf
// @Param receiptNo path string true "Receipt number"
// @Success 200 {string} string "PDF payload"
// @Security BearerAuth
// @Router /accountant/fees/receipts/{receiptNo} [get]
func (h *FeeHandler) Receipt(c *gin.Context) {
	detail, err := h.fees.ReceiptDetail(c.Request.Context(), c.Param("receiptNo"))
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.fees.Status(c.Request.Context(), detail.EnrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt := export.ReceiptData{
		ReceiptNo:   detail.ReceiptNo,
		StudentName: detail.StudentName,
		RegNo:       detail.RegNo,
		ClassLabel:  fmt.Sprintf("%d-%s", detail.ClassLevel, detail.Division),
		AmountPaid:  fmt.Sprintf("%.2f", detail.AmountPaid),
		PaymentMode: detail.PaymentMode,
		PaymentDate: detail.PaymentDate.Format("2006-01-02"),
		BalanceDue:  fmt.Sprintf("%.2f", status.Pending),
	}

	payload, err := h.pdf.RenderReceipt(receipt)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, detail.ReceiptNo))
	c.Data(http.StatusOK, "application/pdf", payload)
}
