package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// AcademicYearHandler exposes session administration endpoints.
type AcademicYearHandler struct {
	years *service.AcademicYearService
}

// NewAcademicYearHandler constructs AcademicYearHandler.
func NewAcademicYearHandler(years *service.AcademicYearService) *AcademicYearHandler {
	return &AcademicYearHandler{years: years}
}

// Create godoc
// @Summary Open a new academic year
// @Tags AcademicYears
// @Accept json
// @Produce json
// @Param payload body models.CreateAcademicYearRequest true "Year payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/academic-years [post]
func (h *AcademicYearHandler) Create(c *gin.Context) {
	var req models.CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	year, err := h.years.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, year)
}

// List godoc
// @Summary List academic years
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/academic-years [get]
func (h *AcademicYearHandler) List(c *gin.Context) {
	years, err := h.years.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, years)
}

// Active godoc
// @Summary Get the active academic year
// @Tags AcademicYears
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/academic-years/active [get]
func (h *AcademicYearHandler) Active(c *gin.Context) {
	year, err := h.years.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, year)
}

// Activate godoc
// @Summary Activate an academic year
// @Tags AcademicYears
// @Produce json
// @Param id path int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/academic-years/{id}/activate [put]
func (h *AcademicYearHandler) Activate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid academic year id"))
		return
	}
	if err := h.years.Activate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "academic year activated"})
}

// Close godoc
// @Summary Close an academic year
// @Tags AcademicYears
// @Produce json
// @Param id path int true "Academic year ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/academic-years/{id}/close [put]
func (h *AcademicYearHandler) Close(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid academic year id"))
		return
	}
	if err := h.years.Close(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "academic year closed"})
}
