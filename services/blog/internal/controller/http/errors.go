package http

import (
	"errors"
	"net/http"
	"strconv"

	"inkpress/pkg/baas"
	"inkpress/pkg/logger"
	"inkpress/services/blog/internal/entity"
	"inkpress/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotSignedIn), errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}

	var apiErr *baas.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}. Server-side failures are logged and
// their details hidden from the client.
func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("Failed to %s: %v", action, err)
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pageFromQuery reads ?page=&limit=; bad values fall back to the defaults.
func pageFromQuery(c *gin.Context) entity.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return entity.NewPage(page, limit)
}
