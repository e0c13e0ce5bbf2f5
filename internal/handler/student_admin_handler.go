package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// StudentAdminHandler exposes the admin side of enrollment management,
// including the bulk promotion workflow.
type StudentAdminHandler struct {
	auth        *service.AuthService
	students    *service.StudentService
	enrollments *service.EnrollmentService
	promotions  *service.PromotionService
	dashboards  *service.DashboardService
}

// NewStudentAdminHandler constructs StudentAdminHandler.
func NewStudentAdminHandler(auth *service.AuthService, students *service.StudentService, enrollments *service.EnrollmentService, promotions *service.PromotionService, dashboards *service.DashboardService) *StudentAdminHandler {
	return &StudentAdminHandler{
		auth:        auth,
		students:    students,
		enrollments: enrollments,
		promotions:  promotions,
		dashboards:  dashboards,
	}
}

// Register godoc
// @Summary Admit a new student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.RegisterStudentRequest true "Admission payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/students [post]
func (h *StudentAdminHandler) Register(c *gin.Context) {
	var req models.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollmentID, err := h.auth.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"enrollment_id": enrollmentID})
}

// FindByRegNo godoc
// @Summary Look up a student by registration number
// @Tags Students
// @Produce json
// @Param regNo path string true "Registration number"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/students/{regNo} [get]
func (h *StudentAdminHandler) FindByRegNo(c *gin.Context) {
	student, err := h.students.FindByRegNo(c.Request.Context(), c.Param("regNo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// ListByYear godoc
// @Summary List enrollments of a year
// @Tags Students
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/enrollments [get]
func (h *StudentAdminHandler) ListByYear(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	enrollments, err := h.enrollments.ListByYear(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// Dashboard godoc
// @Summary Admin landing page counts for a year
// @Tags Students
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *StudentAdminHandler) Dashboard(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	dashboard, err := h.dashboards.Admin(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// ListByClass godoc
// @Summary List a class register
// @Tags Students
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/enrollments/class/{classId} [get]
func (h *StudentAdminHandler) ListByClass(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	enrollments, err := h.enrollments.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

// ChangeClassRoll godoc
// @Summary Move an enrollment to another class or roll
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.ChangeClassRollRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/enrollments/class [put]
func (h *StudentAdminHandler) ChangeClassRoll(c *gin.Context) {
	var req models.ChangeClassRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.enrollments.ChangeClassRoll(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "enrollment moved"})
}

// ToggleStatus godoc
// @Summary Toggle an enrollment between active and inactive
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.ToggleStatusRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/enrollments/status [put]
func (h *StudentAdminHandler) ToggleStatus(c *gin.Context) {
	var req models.ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	status, err := h.enrollments.ToggleStatus(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": status})
}

// Promote godoc
// @Summary Promote a class to the next year
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body models.PromoteClassRequest true "Promotion payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/enrollments/promote [post]
func (h *StudentAdminHandler) Promote(c *gin.Context) {
	var req models.PromoteClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.promotions.Promote(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboards.Invalidate(c.Request.Context())
	response.OK(c, result)
}
