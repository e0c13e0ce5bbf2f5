package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/edulite/school-api/pkg/errors"
)

// Envelope is the uniform response contract: every reply carries a
// status discriminator plus either a data payload or an error body.
type Envelope struct {
	Status string           `json:"status"`
	Data   interface{}      `json:"data,omitempty"`
	Error  *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Status: "success", Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response converting the error to the common structure.
// Internal detail never leaves the process; only the taxonomy code and its
// message are serialized.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Status: "error", Error: appErr})
}
