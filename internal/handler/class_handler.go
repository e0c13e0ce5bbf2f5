package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// ClassHandler exposes class administration endpoints.
type ClassHandler struct {
	classes  *service.ClassService
	subjects *service.SubjectService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes *service.ClassService, subjects *service.SubjectService) *ClassHandler {
	return &ClassHandler{classes: classes, subjects: subjects}
}

// Create godoc
// @Summary Add a class to a year
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// ListByYear godoc
// @Summary List classes of a year
// @Tags Classes
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes [get]
func (h *ClassHandler) ListByYear(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	classes, err := h.classes.ListByYear(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

// Profile godoc
// @Summary Get one class with teacher and headcount
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes/{id} [get]
func (h *ClassHandler) Profile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	profile, err := h.classes.Profile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// AssignTeacher godoc
// @Summary Assign a homeroom teacher
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body models.AssignClassTeacherRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes/teacher [put]
func (h *ClassHandler) AssignTeacher(c *gin.Context) {
	var req models.AssignClassTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.classes.AssignTeacher(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "class teacher assigned"})
}

// DivisionCounts godoc
// @Summary Headcount per level and division
// @Tags Classes
// @Produce json
// @Param yearId query int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes/divisions [get]
func (h *ClassHandler) DivisionCounts(c *gin.Context) {
	yearID, ok := queryID(c, "yearId")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "yearId query parameter is required"))
		return
	}
	counts, err := h.classes.DivisionCounts(c.Request.Context(), yearID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// Subjects godoc
// @Summary List a class's subjects
// @Tags Classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes/{id}/subjects [get]
func (h *ClassHandler) Subjects(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid class id"))
		return
	}
	subjects, err := h.subjects.ListByClass(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}
