package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
)

// getUserID extracts the authenticated user ID from the Gin context.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// parseFlexibleDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// dateOnly reports that no time of day was supplied, so a caller treating
// the value as the end of an inclusive range can extend it to end of day.
func parseFlexibleDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse("2006-01-02", value); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date: "+value)
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status, code, and message; anything else is logged and surfaced as
// a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
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

	logger.Get().Errorw("unexpected error",
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

// ErrorDetail is the inner object of an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
