package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is also the body stored in the idempotency ledger, so field changes alter replays.
type BookingView struct {
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

type SlotView struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type PaymentView struct {
	ID            uuid.UUID `json:"id"`
	BookingID     uuid.UUID `json:"booking_id"`
	AmountMinor   int64     `json:"amount_minor"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type AuditEntryView struct {
	ID          uuid.UUID      `json:"id"`
	PerformedBy *uuid.UUID     `json:"performed_by,omitempty"`
	Action      string         `json:"action"`
	TargetID    uuid.UUID      `json:"target_id"`
	Details     map[string]any `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}
