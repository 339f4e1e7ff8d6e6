package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox topics written to notification_jobs.
const (
	notificationKind = "booking_event"

	topicBookingCreated   = "booking.created"
	topicBookingConfirmed = "booking.confirmed"
	topicBookingFailed    = "booking.failed"
	topicBookingCancelled = "booking.cancelled"
)

func requestHash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

func bookingEventPayload(b *booking.Booking) []byte {
	payload, _ := json.Marshal(map[string]any{
		"booking_id": b.ID(),
		"patient_id": b.PatientID(),
		"doctor_id":  b.DoctorID(),
		"slot_id":    b.SlotID(),
		"status":     b.Status().String(),
	})
	return payload
}

func toBookingView(b *booking.Booking, s *slot.Slot) *queries.BookingView {
	return &queries.BookingView{
		ID:        b.ID(),
		PatientID: b.PatientID(),
		DoctorID:  b.DoctorID(),
		SlotID:    b.SlotID(),
		Status:    b.Status().String(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toSlotView(s *slot.Slot) *queries.SlotView {
	return &queries.SlotView{
		ID:        s.ID(),
		DoctorID:  s.DoctorID(),
		StartTime: s.StartTime(),
		EndTime:   s.EndTime(),
		Status:    s.Status().String(),
	}
}

func toPaymentView(p *payment.Payment) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		AmountMinor:   p.Amount().Minor(),
		Currency:      p.Amount().Currency(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		CreatedAt:     p.CreatedAt(),
	}
}

// invalidateSlotListings runs after commit; the cache is never the source of truth for occupancy.
func invalidateSlotListings(ctx context.Context, cache shared.Cache, doctorID uuid.UUID) {
	pattern := shared.SlotListPattern(doctorID.String())
	if err := cache.DeleteByPattern(ctx, pattern); err != nil {
		slog.WarnContext(ctx, "slot cache invalidation failed", slog.String("pattern", pattern), slog.Any("error", err))
	}
}

// releaseSlot reopens the booking's slot under its row lock. Caller must already hold the booking lock.
func releaseSlot(ctx context.Context, tx shared.Tx, slotID uuid.UUID, now time.Time) (bool, error) {
	s, err := tx.Slots().LockByID(ctx, slotID)
	if err != nil {
		return false, err
	}
	if !s.Release() {
		return false, nil
	}
	if err := tx.Slots().SaveOccupancy(ctx, s, now); err != nil {
		return false, err
	}
	return true, nil
}
