package services

import "errors"

// Domain errors returned by services. Controllers translate them to HTTP
// status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrAlreadyRated       = errors.New("product already rated by this user")
	ErrVersionConflict    = errors.New("cart was modified concurrently")
	ErrDuplicateAccount   = errors.New("email or phone already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVeterinarian    = errors.New("user is not a veterinarian")
	ErrPastAppointment    = errors.New("appointment time must be in the future")
	ErrForbidden          = errors.New("forbidden")
)
