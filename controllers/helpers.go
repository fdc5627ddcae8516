package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

// requireUser aborts with 401 when the auth middleware did not run.
func requireUser(c *gin.Context) (uint, bool) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return uid, ok
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidDay), errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnknownPlatform):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoFoodRecognized):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError hides internal error text behind a generic message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
