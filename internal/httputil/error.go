package httputil

import (
	"github.com/gin-gonic/gin"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Success bool   `json:"success" example:"false"`                                               // Always false for errors
	Error   string `json:"error" example:"there is no sunday service report matching your query"` // The error that occurred
}

// NewError writes an HTTPError with the status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// AbortWithError writes an HTTPError with the status and stops the
// handler chain.
func AbortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: err.Error(),
	})
}
