package response

import (
	"time"

	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	DoctorID             uuid.UUID `json:"doctor_id"`
	SlotID               uuid.UUID `json:"slot_id"`
	Status               string    `json:"status"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	PaymentTransactionID *string   `json:"payment_transaction_id,omitempty"`
	PaymentStatus        *string   `json:"payment_status,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type AuditEntryResponse struct {
	ID          uuid.UUID      `json:"id"`
	PerformedBy *uuid.UUID     `json:"performed_by,omitempty"`
	Action      string         `json:"action"`
	TargetID    uuid.UUID      `json:"target_id"`
	Details     map[string]any `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromAuditEntries(entries []*queries.AuditEntryView) ([]AuditEntryResponse, error) {
	resp := make([]AuditEntryResponse, 0, len(entries))
	if err := copier.Copy(&resp, &entries); err != nil {
		return nil, err
	}
	return resp, nil
}
