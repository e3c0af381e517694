package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "momopress/internal/errors"
	"momopress/internal/logger"
)

// ErrorHandler renders the last error attached to the gin context as
// {"error":{"code","message"}}. Bind errors become INVALID_INPUT. Responses
// already written by a handler are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		err := last.Err
		if last.IsType(gin.ErrorTypeBind) {
			err = apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}

		log := logger.For(logger.ComponentHTTP)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unexpected error",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
