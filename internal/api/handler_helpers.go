package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// parseUUID parses a UUID path parameter, answering 400 when it is malformed.
func parseUUID(c *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func isClientError(err error) bool {
	var verrs domain.ValidationErrors
	return errors.As(err, &verrs) ||
		errors.Is(err, domain.ErrDuplicateSoul) ||
		errors.Is(err, domain.ErrNotFound)
}

// handleServiceError maps service errors onto status codes.
func handleServiceError(c *gin.Context, err error, operation string) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": verrs,
		})
	case errors.Is(err, domain.ErrDuplicateSoul):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrDuplicateSoul.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation + " entries"})
	}
}
