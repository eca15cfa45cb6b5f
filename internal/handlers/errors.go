package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/macalbert/cdk-intro-workshop/internal/middleware"
)

// isBodyTooLarge checks if reading the body hit the size limit
func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

// respondError writes the shared error envelope used by the middleware
func respondError(c *gin.Context, status int, title string, err error) {
	c.JSON(status, middleware.NewErrorResponse(c, title, err.Error()))
}
