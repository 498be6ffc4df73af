package middlewares

import (
	"errors"
	"net/http"

	domainErrors "go-bulk-messaging-dashboard/src/domain/errors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors attached to the context onto HTTP responses
// after the handler chain has run.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *domainErrors.AppError
		if !errors.As(err, &appErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		switch appErr.Type {
		case domainErrors.NotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": appErr.Error()})
		case domainErrors.ValidationError:
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Error()})
		case domainErrors.NotAuthenticated:
			c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Error()})
		case domainErrors.NotAuthorized:
			c.JSON(http.StatusForbidden, gin.H{"error": appErr.Error()})
		case domainErrors.Conflict:
			c.JSON(http.StatusConflict, gin.H{"error": appErr.Error()})
		case domainErrors.ChannelUnavailable:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": appErr.Error()})
		case domainErrors.RepositoryError:
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Error()})
		}
	}
}
