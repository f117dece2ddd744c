// Package api holds the gin handlers of the HTTP surface.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/scraper"
	"github.com/pageza/recipebox/backend/internal/service"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrGroceryListNotFound),
		errors.Is(err, service.ErrGroceryItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoRecipes),
		errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrUnsupportedSource):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnsupportedImageType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, scraper.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Unexpected errors are logged and
// hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	metrics.TrackAPIError(c.FullPath(), http.StatusText(status))
	if status == http.StatusInternalServerError {
		logger.For("api").WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// paramID parses the uuid path parameter name, writing a 400 when it is
// malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	metrics.TrackAPIError(c.FullPath(), "validation")
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "message": err.Error()})
}
