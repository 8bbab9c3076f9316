package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// BadRequest sends 400 with an error message the client may show.
func BadRequest(c *gin.Context, err string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body{Success: false, Error: err})
}

// Internal sends 500. The message must not carry upstream detail.
func Internal(c *gin.Context, err string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Body{Success: false, Error: err})
}
