package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "momopress/internal/errors"
	"momopress/internal/logger"
	"momopress/internal/middleware"
)

// Clock returns the current time in the location that reporting windows use.
type Clock func() time.Time

// LocalClock returns a Clock reading the wall clock in loc.
func LocalClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// getPhone extracts the authenticated phone from the Gin context.
// Returns ErrUnauthorized if not present.
func getPhone(c *gin.Context) (string, error) {
	phone := c.GetString(middleware.PhoneKey)
	if phone == "" {
		return "", apperrors.ErrUnauthorized
	}
	return phone, nil
}

// bindError wraps a binding failure as INVALID_INPUT.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	log := logger.For(logger.ComponentHTTP)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
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
		return
	}

	log.Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
