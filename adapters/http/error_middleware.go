package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/techfolio/backend/pkg/apperror"
	"github.com/techfolio/backend/pkg/logger"
)

// ErrorMiddleware renders errors collected by handlers as the apperror
// JSON shape. No failure is fatal: every path returns the caller to an
// interactive state with a status and a message.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if status >= 500 {
				log.Error("Request failed", appErr, zap.String("path", c.Request.URL.Path))
			}
			c.AbortWithStatusJSON(status, appErr.ToJSON())
			return
		}

		log.Error("Unhandled request error", err, zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
	}
}
