package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/service"
	appErrors "github.com/edulite/school-api/pkg/errors"
	"github.com/edulite/school-api/pkg/response"
)

// UserHandler exposes admin account endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List accounts
// @Tags Users
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Get godoc
// @Summary Get one account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// Search godoc
// @Summary Search accounts by username
// @Tags Users
// @Produce json
// @Param q query string true "Username fragment"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// SetStatus godoc
// @Summary Activate or deactivate an account
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/{id}/status [put]
func (h *UserHandler) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}
	var req struct {
		Status models.UserStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	if err := h.users.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "status changed"})
}

// ResetPassword godoc
// @Summary Reset an account's password to its registration number
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/{id}/reset-password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid user id"))
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "password reset"})
}

// CountByRole godoc
// @Summary Account totals per role
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users/counts [get]
func (h *UserHandler) CountByRole(c *gin.Context) {
	counts, err := h.users.CountByRole(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}
