package queries

import "telemed-booking/internal/pkg/errs"

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("not allowed to view this resource")
	ErrInvalidRange    = errs.New("invalid time range")
)
