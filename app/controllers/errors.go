package controllers

import (
	"errors"
	"net/http"

	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/response"
)

// fail maps a service error onto the HTTP envelope. Unrecognized errors are
// logged and reported as a 500 without leaking internals.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrDuplicateAccount):
		response.Conflict(w, "An account with that email or phone already exists")
	case errors.Is(err, services.ErrAlreadyRated):
		response.Conflict(w, "You have already rated this product")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrEmptyCart):
		response.BadRequest(w, "Your cart is empty")
	case errors.Is(err, services.ErrInsufficientStock):
		response.BadRequest(w, "Not enough stock for the requested quantity")
	case errors.Is(err, services.ErrInvalidQuantity):
		response.BadRequest(w, "Quantity must be at least 1")
	case errors.Is(err, services.ErrInvalidStatus):
		response.BadRequest(w, "Unknown status")
	case errors.Is(err, services.ErrNotVeterinarian):
		response.BadRequest(w, "The selected user is not a veterinarian")
	case errors.Is(err, services.ErrPastAppointment):
		response.BadRequest(w, "Appointments must be scheduled in the future")
	case errors.Is(err, services.ErrVersionConflict):
		response.Conflict(w, "Your cart changed, please retry")
	default:
		logger.WithCtx(r.Context()).Error("unhandled service error", "error", err, "path", r.URL.Path)
		response.Internal(w)
	}
}
