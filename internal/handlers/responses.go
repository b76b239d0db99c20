package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labvitta/labfin/internal/apperrors"
)

// statusForError maps a service error to an HTTP status. Every rejection
// leaves the entity untouched, so conflicts are reported as 409 and the
// caller may simply retry with a different input or action.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrImmutableState),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrImmutableEntry),
		errors.Is(err, apperrors.ErrOverpayment),
		errors.Is(err, apperrors.ErrAlreadyReversed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondWithError writes the uniform error body used across the API.
// Internal errors are not leaked to clients.
func respondWithError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
