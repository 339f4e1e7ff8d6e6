//go:build unit || e2e

package builder

import (
	"time"

	reqdto "telemed-booking/internal/handler/dto/request"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	AmountMinor   int64
	Currency      string
	Status        string
	TransactionID string
	CreatedAt     time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		ID:            uuid.New(),
		BookingID:     uuid.New(),
		AmountMinor:   50000,
		Currency:      "INR",
		Status:        "pending",
		TransactionID: "tx_" + uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
	}
}

func (b *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(b)
	return b
}

func (b *PaymentBuilder) BuildView() *queries.PaymentView {
	return &queries.PaymentView{
		ID:            b.ID,
		BookingID:     b.BookingID,
		AmountMinor:   b.AmountMinor,
		Currency:      b.Currency,
		Status:        b.Status,
		TransactionID: b.TransactionID,
		CreatedAt:     b.CreatedAt,
	}
}

func (b *PaymentBuilder) BuildInitiateRequestDTO() reqdto.InitiatePaymentRequest {
	return reqdto.InitiatePaymentRequest{BookingID: b.BookingID, Amount: b.AmountMinor}
}

func (b *PaymentBuilder) BuildWebhookRequestDTO(status string) reqdto.PaymentWebhookRequest {
	return reqdto.PaymentWebhookRequest{TransactionID: b.TransactionID, Status: status}
}
