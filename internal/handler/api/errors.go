package api

import (
	"net/http"

	"telemed-booking/internal/handler/httperr"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is advertised on 503 responses caused by lock or connection trouble.
const retryAfterSeconds = "1"

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first matching sentinel wins.
var errorTable = []errorMapping{
	{commands.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header is required"},
	{commands.ErrInvalidSlot, http.StatusBadRequest, "Invalid slot window"},
	{commands.ErrInvalidOutcome, http.StatusBadRequest, "Unknown payment status"},
	{commands.ErrInvalidAmount, http.StatusBadRequest, "Invalid payment amount"},
	{queries.ErrInvalidRange, http.StatusBadRequest, "Invalid time range"},
	{commands.ErrInvalidSignature, http.StatusForbidden, "Invalid signature"},
	{commands.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{queries.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{commands.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
	{commands.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{queries.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{commands.ErrPaymentNotFound, http.StatusNotFound, "Transaction not found"},
	{commands.ErrSlotAlreadyBooked, http.StatusConflict, "Slot already booked"},
	{commands.ErrSlotOverlap, http.StatusConflict, "Slot overlaps an existing slot"},
	{commands.ErrBookingNotPending, http.StatusConflict, "Booking is no longer awaiting payment"},
	{commands.ErrPaymentAlreadyInitiated, http.StatusConflict, "A different payment is already pending"},
	{commands.ErrIdempotencyInProgress, http.StatusConflict, "Request with this Idempotency-Key is still in progress"},
	{commands.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency-Key was already used with a different request"},
	{commands.ErrTransientStore, http.StatusServiceUnavailable, "Service temporarily unavailable, retry with the same Idempotency-Key"},
}

func respondError(c *gin.Context, err error, fallback string) {
	for _, m := range errorTable {
		if errs.Is(err, m.target) {
			if m.status == http.StatusServiceUnavailable {
				c.Header("Retry-After", retryAfterSeconds)
			}
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
}
