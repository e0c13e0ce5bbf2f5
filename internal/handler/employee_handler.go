package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// EmployeeHandler exposes staff administration endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs EmployeeHandler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// ListByRole godoc
// @Summary List staff of one role
// @Tags Staff
// @Produce json
// @Param role query string true "Role (teacher, accountant, principal)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/staff [get]
func (h *EmployeeHandler) ListByRole(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	switch role {
	case models.RoleTeacher, models.RoleAccountant, models.RolePrincipal:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "role must be teacher, accountant or principal"))
		return
	}
	staff, err := h.employees.ListByRole(c.Request.Context(), role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, staff)
}

// UpdateSalary godoc
// @Summary Adjust an employee's salary
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body models.UpdateSalaryRequest true "Salary payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/staff/salary [put]
func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	var req models.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.employees.UpdateSalary(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "salary updated"})
}

// ChangeStatus godoc
// @Summary Activate or deactivate a staff account
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body models.ChangeEmployeeStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/staff/status [put]
func (h *EmployeeHandler) ChangeStatus(c *gin.Context) {
	var req models.ChangeEmployeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.employees.ChangeStatus(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "status changed"})
}
