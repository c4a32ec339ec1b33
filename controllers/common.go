package controllers

import (
	"errors"

	"github.com/IT2357/Hotel-Management-sub000/pkg/resp"
	"github.com/IT2357/Hotel-Management-sub000/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP codes.
// Anything unrecognised is a real server fault.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrStaffNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrAlreadyReviewed):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidSignature):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTaskType),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrNoteRequired),
		errors.Is(err, services.ErrMenuNotFound):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
