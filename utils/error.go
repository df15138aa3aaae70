package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key holding the request-scoped logger.
const LoggerKey = "logger"

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ContextLogger returns the request-scoped logger, or the global one when the
// request logger middleware did not run.
func ContextLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(LoggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// ErrorHandler recovers handler panics into a 500 reply.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				ContextLogger(c).Error("recovered from panic",
					zap.Any("panic", r),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes status with an ErrorResponse body. 5xx replies are logged at
// error level, everything else at debug.
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := ContextLogger(c).With(zap.Int("status", status), zap.String("path", c.FullPath()))
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.String("details", details))
	} else {
		logger.Debug(message, zap.String("details", details))
	}
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
