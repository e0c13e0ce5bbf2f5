package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// StudentHandler exposes the student portal. Every route resolves data
// through the caller's own user ID so students can only see themselves.
type StudentHandler struct {
	students    *service.StudentService
	enrollments *service.EnrollmentService
	attendance  *service.AttendanceService
	marks       *service.MarksService
	fees        *service.FeeService
	dashboards  *service.DashboardService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, enrollments *service.EnrollmentService, attendance *service.AttendanceService, marks *service.MarksService, fees *service.FeeService, dashboards *service.DashboardService) *StudentHandler {
	return &StudentHandler{
		students:    students,
		enrollments: enrollments,
		attendance:  attendance,
		marks:       marks,
		fees:        fees,
		dashboards:  dashboards,
	}
}

// currentEnrollment resolves the caller's active-year enrollment.
func (h *StudentHandler) currentEnrollment(c *gin.Context) (*models.CurrentEnrollment, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return nil, false
	}
	current, err := h.enrollments.Current(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return current, true
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/profile [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	profile, err := h.students.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// UpdateContact godoc
// @Summary Update the caller's contact fields
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body models.UpdateStudentContactRequest true "Contact payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/profile [put]
func (h *StudentHandler) UpdateContact(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	var req models.UpdateStudentContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.students.UpdateContact(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "contact updated"})
}

// Dashboard godoc
// @Summary Student landing page summary
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/dashboard [get]
func (h *StudentHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	dashboard, err := h.dashboards.Student(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// Enrollment godoc
// @Summary Get the caller's current enrollment
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/enrollment [get]
func (h *StudentHandler) Enrollment(c *gin.Context) {
	current, ok := h.currentEnrollment(c)
	if !ok {
		return
	}
	response.OK(c, current)
}

// History godoc
// @Summary Get the caller's enrollment history
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/enrollment/history [get]
func (h *StudentHandler) History(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	history, err := h.enrollments.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, history)
}

// Marks godoc
// @Summary Get the caller's marks
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/marks [get]
func (h *StudentHandler) Marks(c *gin.Context) {
	current, ok := h.currentEnrollment(c)
	if !ok {
		return
	}
	marks, err := h.marks.StudentMarks(c.Request.Context(), current.EnrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, marks)
}

// Progress godoc
// @Summary Per-exam progress report
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/progress [get]
func (h *StudentHandler) Progress(c *gin.Context) {
	current, ok := h.currentEnrollment(c)
	if !ok {
		return
	}
	rows, err := h.marks.ProgressReport(c.Request.Context(), current.EnrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Attendance godoc
// @Summary Monthly attendance view
// @Tags Student
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/attendance [get]
func (h *StudentHandler) Attendance(c *gin.Context) {
	current, ok := h.currentEnrollment(c)
	if !ok {
		return
	}
	summary, err := h.attendance.Monthly(c.Request.Context(), current.EnrollmentID, c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Fees godoc
// @Summary Fee balance and ledger
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/fees [get]
func (h *StudentHandler) Fees(c *gin.Context) {
	current, ok := h.currentEnrollment(c)
	if !ok {
		return
	}
	status, err := h.fees.Status(c.Request.Context(), current.EnrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := h.fees.Payments(c.Request.Context(), current.EnrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": status, "payments": payments})
}
