package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// SubjectHandler exposes subject administration endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// Create godoc
// @Summary Add a subject to a class
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body models.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subjectID, err := h.subjects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"subject_id": subjectID})
}

// Info godoc
// @Summary Get one subject's detail
// @Tags Subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/subjects/{id} [get]
func (h *SubjectHandler) Info(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid subject id"))
		return
	}
	info, err := h.subjects.Info(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// ChangeTeacher godoc
// @Summary Reassign a subject to another teacher
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body models.ChangeSubjectTeacherRequest true "Reassignment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/subjects/teacher [put]
func (h *SubjectHandler) ChangeTeacher(c *gin.Context) {
	var req models.ChangeSubjectTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.subjects.ChangeTeacher(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "subject teacher changed"})
}
