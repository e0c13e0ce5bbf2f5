package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// AccountantHandler exposes the accountant's own profile; fee operations
// live on FeeHandler and are mounted under the accountant group.
type AccountantHandler struct {
	employees *service.EmployeeService
}

// NewAccountantHandler constructs AccountantHandler.
func NewAccountantHandler(employees *service.EmployeeService) *AccountantHandler {
	return &AccountantHandler{employees: employees}
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags Accountant
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/profile [get]
func (h *AccountantHandler) Profile(c *gin.Context) {
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
// @Tags Accountant
// @Accept json
// @Produce json
// @Param payload body models.UpdateEmployeeProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /accountant/profile [put]
func (h *AccountantHandler) UpdateProfile(c *gin.Context) {
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
