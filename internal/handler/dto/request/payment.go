package request

import "github.com/google/uuid"

type InitiatePaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	// Amount is in minor currency units.
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type PaymentWebhookRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}
