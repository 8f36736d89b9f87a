package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is the error body returned by every endpoint
type APIError struct {
	Detail string `json:"detail"`
}

// RespondError sends an error response and records err on the context
func RespondError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIError{Detail: err.Error()})
}

// UnprocessableEntity sends a 422 error for request bodies that fail validation
func UnprocessableEntity(c *gin.Context, err error) {
	RespondError(c, http.StatusUnprocessableEntity, err)
}

// InternalError sends a 500 error carrying the error text
func InternalError(c *gin.Context, err error) {
	RespondError(c, http.StatusInternalServerError, err)
}

// Recovery converts panics into 500 responses with a detail body
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		InternalError(c, fmt.Errorf("%v", recovered))
	})
}
