package query

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Slot struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	IsBooked  bool
	Status    string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Booking struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	SlotID    uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Payment struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	AmountMinor   int64
	Currency      string
	Status        string
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type IdempotencyKey struct {
	Endpoint       string
	Key            string
	UserID         uuid.UUID
	RequestHash    string
	Status         string
	ResponseStatus pgtype.Int4
	ResponseBody   []byte
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

type AuditLog struct {
	ID          uuid.UUID
	PerformedBy pgtype.UUID
	Action      string
	TargetID    uuid.UUID
	Details     []byte
	CreatedAt   time.Time
}

type BookingDetail struct {
	ID                   uuid.UUID
	PatientID            uuid.UUID
	DoctorID             uuid.UUID
	SlotID               uuid.UUID
	Status               string
	StartTime            time.Time
	EndTime              time.Time
	PaymentTransactionID pgtype.Text
	PaymentStatus        pgtype.Text
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
