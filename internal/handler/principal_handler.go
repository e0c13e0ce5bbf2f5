package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// PrincipalHandler exposes the principal's read-only statistics views.
type PrincipalHandler struct {
	employees  *service.EmployeeService
	dashboards *service.DashboardService
	marks      *service.MarksService
	fees       *service.FeeService
	stats      *service.StatsService
}

// NewPrincipalHandler constructs PrincipalHandler.
func NewPrincipalHandler(employees *service.EmployeeService, dashboards *service.DashboardService, marks *service.MarksService, fees *service.FeeService, stats *service.StatsService) *PrincipalHandler {
	return &PrincipalHandler{
		employees:  employees,
		dashboards: dashboards,
		marks:      marks,
		fees:       fees,
		stats:      stats,
	}
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags Principal
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/profile [get]
func (h *PrincipalHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	profile, err := h.employees.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Overview godoc
// @Summary School overview counts
// @Tags Principal
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/overview [get]
func (h *PrincipalHandler) Overview(c *gin.Context) {
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

// GenderStats godoc
// @Summary Gender split of active students
// @Tags Principal
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/stats/gender [get]
func (h *PrincipalHandler) GenderStats(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	counts, err := h.stats.GenderCounts(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// TeacherWorkloads godoc
// @Summary Subjects taught per teacher
// @Tags Principal
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/stats/workloads [get]
func (h *PrincipalHandler) TeacherWorkloads(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	workloads, err := h.stats.TeacherWorkloads(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, workloads)
}

// TopStudents godoc
// @Summary Highest-percentage students of a year
// @Tags Principal
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Param limit query int false "Result cap (default 10)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/stats/top-students [get]
func (h *PrincipalHandler) TopStudents(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.marks.TopStudents(c.Request.Context(), yearID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// FeeSummary godoc
// @Summary School-level fee collection overview
// @Tags Principal
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/stats/fees [get]
func (h *PrincipalHandler) FeeSummary(c *gin.Context) {
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

// ClassRoster godoc
// @Summary Active students of a class
// @Tags Principal
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /principal/classes/{classId}/students [get]
func (h *PrincipalHandler) ClassRoster(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	roster, err := h.dashboards.ClassRoster(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, roster)
}
