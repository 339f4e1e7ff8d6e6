package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid booking status")
	ErrNotPending     = errors.New("booking is not pending")
	ErrMissingPatient = errors.New("booking requires a patient")
	ErrMissingSlot    = errors.New("booking requires a slot")
)

type Booking struct {
	id        uuid.UUID
	patientID uuid.UUID
	doctorID  uuid.UUID
	slotID    uuid.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(patientID, doctorID, slotID uuid.UUID, now time.Time) (*Booking, error) {
	if patientID == uuid.Nil {
		return nil, ErrMissingPatient
	}
	if slotID == uuid.Nil {
		return nil, ErrMissingSlot
	}
	return &Booking{
		id:        uuid.New(),
		patientID: patientID,
		doctorID:  doctorID,
		slotID:    slotID,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBooking(
	id, patientID, doctorID, slotID uuid.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		patientID: patientID,
		doctorID:  doctorID,
		slotID:    slotID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, now)
}

func (b *Booking) Fail(now time.Time) error {
	return b.transition(StatusFailed, now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.transition(StatusCancelled, now)
}

// Terminal states are immutable; only pending bookings move.
func (b *Booking) transition(to Status, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = to
	b.updatedAt = now
	return nil
}

func (b *Booking) IsPending() bool {
	return b.status == StatusPending
}

func (b *Booking) IsStale(now time.Time, staleAfter time.Duration) bool {
	return b.IsPending() && b.createdAt.Before(now.Add(-staleAfter))
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.patientID == userID
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) PatientID() uuid.UUID { return b.patientID }
func (b *Booking) DoctorID() uuid.UUID  { return b.doctorID }
func (b *Booking) SlotID() uuid.UUID    { return b.slotID }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
