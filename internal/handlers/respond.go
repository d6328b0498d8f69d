package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/termbridge/backend/internal/models"
)

// ErrorResponse sends a standardized error response and logs at caller if needed
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// ServiceErrorResponse maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a persistence or programming failure and
// surfaces as a 500 without leaking internals.
func ServiceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrForbidden):
		// Covers ErrApprovedImmutable as well.
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTransition):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
