package shared

import (
	"context"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to one open transaction. Row locks taken through
// them are held until Within returns.
type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Payments() PaymentRepository
	Idempotency() IdempotencyRepository
	Audit() AuditRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	// SetLockTimeout bounds row-lock waits for the rest of the transaction.
	SetLockTimeout(ctx context.Context, d time.Duration) error
}

type CommandReads interface {
	IdempotencyByKey(ctx context.Context, endpoint, key string) (*IdempotencyRecord, error)
	// StalePendingBookingIDs excludes bookings that already have a dead-letter entry.
	StalePendingBookingIDs(ctx context.Context, createdBefore time.Time, limit int32) ([]uuid.UUID, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type SlotRepository interface {
	// LockByID selects the slot FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// SaveOccupancy persists Reserve/Release; the previous version must still be current.
	SaveOccupancy(ctx context.Context, s *slot.Slot, at time.Time) error
	Create(ctx context.Context, s *slot.Slot) error
	LockSchedule(ctx context.Context, doctorID uuid.UUID) error
	HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus writes b's status only if the stored status still equals from.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error)
	LockByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error)
	FindPendingByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error)
	UpdateStatus(ctx context.Context, p *payment.Payment) error
}

type IdempotencyRepository interface {
	// Claim registers a processing placeholder. It returns false when a live entry already holds the key.
	Claim(ctx context.Context, claim IdempotencyClaim) (bool, error)
	Complete(ctx context.Context, endpoint, key string, status int, body []byte) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuditRepository interface {
	Append(ctx context.Context, e audit.Entry) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
