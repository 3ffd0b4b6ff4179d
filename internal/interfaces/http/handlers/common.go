// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// respondError maps a domain error onto an HTTP response. Backend messages
// pass through verbatim; the kind picks the status code.
func respondError(c *gin.Context, err error) {
	var be *backend.Error
	if !errors.As(err, &be) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	status := http.StatusInternalServerError
	switch be.Kind {
	case backend.KindValidation:
		status = http.StatusBadRequest
	case backend.KindAuthExpired:
		status = http.StatusUnauthorized
	case backend.KindTimeout:
		status = http.StatusGatewayTimeout
	case backend.KindNetwork:
		status = http.StatusBadGateway
	case backend.KindBackend:
		status = http.StatusBadGateway
		if be.Status >= 400 {
			status = be.Status
		}
	}

	c.JSON(status, gin.H{
		"error": be.Error(),
	})
}

// respondData wraps a successful payload in the standard envelope
func respondData(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}
