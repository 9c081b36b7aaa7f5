package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"goal-forecast/internal/api/models"
	applog "goal-forecast/internal/log"
)

// ErrorHandler middleware recovers panics and answers with the standard error body
func ErrorHandler(logger *applog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		if logger != nil {
			logger.WithComponent(applog.ComponentHTTP).ErrorContext(c.Request.Context(), "panic recovered",
				applog.FieldPath, c.Request.URL.Path,
				applog.FieldError, fmt.Sprint(recovered),
				applog.FieldRequestID, c.GetString(RequestIDKey),
			)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
