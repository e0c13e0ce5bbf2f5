package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// TeacherHandler exposes the teacher portal: profile, classes, subjects,
// attendance and marks.
type TeacherHandler struct {
	employees  *service.EmployeeService
	subjects   *service.SubjectService
	attendance *service.AttendanceService
	marks      *service.MarksService
	dashboards *service.DashboardService
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(employees *service.EmployeeService, subjects *service.SubjectService, attendance *service.AttendanceService, marks *service.MarksService, dashboards *service.DashboardService) *TeacherHandler {
	return &TeacherHandler{
		employees:  employees,
		subjects:   subjects,
		attendance: attendance,
		marks:      marks,
		dashboards: dashboards,
	}
}

// teacherEmployee resolves the caller's employee row. Teacher routes key
// on employee_id, not user_id.
func (h *TeacherHandler) teacherEmployee(c *gin.Context) (*models.Employee, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return nil, false
	}
	employee, err := h.employees.ByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return employee, true
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/profile [get]
func (h *TeacherHandler) Profile(c *gin.Context) {
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

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags Teacher
// @Accept json
// @Produce json
// @Param payload body models.UpdateEmployeeProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/profile [put]
func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing credentials"))
		return
	}
	var req models.UpdateEmployeeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.employees.UpdateProfile(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "profile updated"})
}

// Dashboard godoc
// @Summary Teacher workload summary
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/dashboard [get]
func (h *TeacherHandler) Dashboard(c *gin.Context) {
	employee, ok := h.teacherEmployee(c)
	if !ok {
		return
	}
	subjects, err := h.subjects.ListByTeacher(c.Request.Context(), employee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	dashboard, err := h.dashboards.Teacher(c.Request.Context(), employee.ID, subjects)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// Classes godoc
// @Summary List the caller's classes
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/classes [get]
func (h *TeacherHandler) Classes(c *gin.Context) {
	employee, ok := h.teacherEmployee(c)
	if !ok {
		return
	}
	classes, err := h.dashboards.TeacherClasses(c.Request.Context(), employee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// ClassStudents godoc
// @Summary List one class's active students
// @Tags Teacher
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/classes/{classId}/students [get]
func (h *TeacherHandler) ClassStudents(c *gin.Context) {
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

// Subjects godoc
// @Summary List the caller's subjects
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/subjects [get]
func (h *TeacherHandler) Subjects(c *gin.Context) {
	employee, ok := h.teacherEmployee(c)
	if !ok {
		return
	}
	subjects, err := h.subjects.ListByTeacher(c.Request.Context(), employee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// MarkAttendance godoc
// @Summary Mark a class's attendance for a date
// @Tags Teacher
// @Accept json
// @Produce json
// @Param payload body models.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/attendance [post]
func (h *TeacherHandler) MarkAttendance(c *gin.Context) {
	var req models.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.attendance.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "attendance marked"})
}

// AttendanceRegister godoc
// @Summary View a class's attendance for a date
// @Tags Teacher
// @Produce json
// @Param classId path int true "Class ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/attendance/{classId} [get]
func (h *TeacherHandler) AttendanceRegister(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	rows, err := h.attendance.ClassRegister(c.Request.Context(), classID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// AddMarks godoc
// @Summary Record exam marks for a subject
// @Tags Teacher
// @Accept json
// @Produce json
// @Param payload body models.AddMarksRequest true "Marks payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/marks [post]
func (h *TeacherHandler) AddMarks(c *gin.Context) {
	employee, ok := h.teacherEmployee(c)
	if !ok {
		return
	}
	var req models.AddMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.marks.Add(c.Request.Context(), employee.ID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "marks recorded"})
}

// ClassPerformance godoc
// @Summary Class performance ranking
// @Tags Teacher
// @Produce json
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/performance/{classId} [get]
func (h *TeacherHandler) ClassPerformance(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	rows, err := h.marks.ClassPerformance(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// TopStudents godoc
// @Summary Highest-percentage students of a year
// @Tags Teacher
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Param limit query int false "Result cap (default 10)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teacher/top-students [get]
func (h *TeacherHandler) TopStudents(c *gin.Context) {
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
