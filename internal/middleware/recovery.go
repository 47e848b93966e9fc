package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/response"
)

// Recovery converts panics into 500 responses with a structured log
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method))
				response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
