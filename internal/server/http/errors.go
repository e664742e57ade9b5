package http

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto the HTTP status and the message shown
// to the client. Server-side failures get a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrStatsNotFound):
		return http.StatusBadRequest, "User stats not found. Login tracking required first."
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "userId does not match the session"
	case errors.Is(err, common.ErrUnsupportedMode), errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrLimitReached):
		return http.StatusTooManyRequests, common.ErrLimitReached.Error()
	case errors.Is(err, common.ErrUpstream):
		return http.StatusBadGateway, "AI service is unavailable, please try again"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	}
	if code == http.StatusTooManyRequests {
		c.AbortWithStatusJSON(code, gin.H{"allowed": false, "error": msg})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
