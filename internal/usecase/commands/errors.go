package commands

import (
	"telemed-booking/internal/infra"
	"telemed-booking/internal/pkg/errs"
)

var (
	ErrSlotNotFound    = errs.New("slot not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrPaymentNotFound = errs.New("payment not found")

	ErrSlotAlreadyBooked       = errs.New("slot already booked")
	ErrSlotOverlap             = errs.New("slot overlaps an existing slot")
	ErrBookingNotPending       = errs.New("booking is no longer awaiting payment")
	ErrPaymentAlreadyInitiated = errs.New("a different payment is already pending for this booking")
	ErrIdempotencyInProgress   = errs.New("request with this idempotency key is still in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key was used with a different request")

	ErrIdempotencyKeyRequired = errs.New("idempotency key required")
	ErrInvalidSlot            = errs.New("invalid slot")
	ErrInvalidOutcome         = errs.New("invalid payment outcome")
	ErrInvalidAmount          = errs.New("invalid payment amount")
	ErrInvalidSignature       = errs.New("invalid signature")
	ErrForbidden              = errs.New("operation not allowed for this user")

	ErrTransientStore          = errs.New("store temporarily unavailable")
	ErrPermanentItemFailure    = errs.New("item failed permanently")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// storeError passes the listed use case errors through untouched and marks
// everything else as transient or as a plain database failure.
func storeError(err error, known ...error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errs.Is(err, k) {
			return err
		}
	}
	if infra.IsTransient(err) {
		return errs.Mark(err, ErrTransientStore)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
