//go:build unit || e2e

package builder

import (
	"time"

	dombooking "telemed-booking/internal/domain/booking"
	reqdto "telemed-booking/internal/handler/dto/request"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	SlotID    uuid.UUID
	Status    dombooking.Status
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC()
	start := now.Add(48 * time.Hour).Truncate(time.Hour)
	return &BookingBuilder{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		SlotID:    uuid.New(),
		Status:    dombooking.StatusPending,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	return dombooking.ReconstructBooking(b.ID, b.PatientID, b.DoctorID, b.SlotID, b.Status, b.CreatedAt, b.UpdatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:        b.ID,
		PatientID: b.PatientID,
		DoctorID:  b.DoctorID,
		SlotID:    b.SlotID,
		Status:    string(b.Status),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildRequestDTO() reqdto.BookSlotRequest {
	return reqdto.BookSlotRequest{SlotID: b.SlotID}
}
