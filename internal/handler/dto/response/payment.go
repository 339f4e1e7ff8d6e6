package response

import (
	"time"

	"telemed-booking/internal/usecase/commands"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentResponse struct {
	ID            uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	AmountMinor   int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type WebhookResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingStatus string    `json:"booking_status"`
	PaymentStatus string    `json:"payment_status"`
	Applied       bool      `json:"applied"`
}

func FromPaymentView(v *queries.PaymentView) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromCallbackResult(r *commands.CallbackResult) *WebhookResponse {
	return &WebhookResponse{
		BookingID:     r.BookingID,
		BookingStatus: r.BookingStatus,
		PaymentStatus: r.PaymentStatus,
		Applied:       r.Applied,
	}
}
