// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// The API mirrors the wire contract the static pages already consume: raw
// arrays/objects on success, {"error": "..."} on failure.

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

// InternalErrorResponse logs the real error and returns a generic message so
// internal detail never reaches the caller.
func InternalErrorResponse(c *gin.Context, err error, message string) {
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).WithError(err).Error("Request failed")

	ErrorResponse(c, http.StatusInternalServerError, message)
}

func ValidationErrorResponse(c *gin.Context, message string, errors []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   message,
		"details": errors,
	})
}
