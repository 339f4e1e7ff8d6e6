package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow   = errors.New("slot end must be after start")
	ErrInvalidStatus   = errors.New("invalid slot status")
	ErrAlreadyBooked   = errors.New("slot is already booked")
	ErrMissingDoctor   = errors.New("slot requires a doctor")
	ErrWindowInThePast = errors.New("slot window is in the past")
)

// Slot is a bookable window of one doctor. Occupancy changes are only valid
// while the row is held under an exclusive lock by the caller's transaction.
type Slot struct {
	id        uuid.UUID
	doctorID  uuid.UUID
	startTime time.Time
	endTime   time.Time
	isBooked  bool
	status    Status
	version   int64
	createdAt time.Time
}

func NewSlot(doctorID uuid.UUID, start, end, now time.Time) (*Slot, error) {
	if doctorID == uuid.Nil {
		return nil, ErrMissingDoctor
	}
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}
	if !start.After(now) {
		return nil, ErrWindowInThePast
	}
	return &Slot{
		id:        uuid.New(),
		doctorID:  doctorID,
		startTime: start,
		endTime:   end,
		status:    StatusOpen,
		createdAt: now,
	}, nil
}

func ReconstructSlot(
	id, doctorID uuid.UUID,
	start, end time.Time,
	isBooked bool,
	status Status,
	version int64,
	createdAt time.Time,
) *Slot {
	return &Slot{
		id:        id,
		doctorID:  doctorID,
		startTime: start,
		endTime:   end,
		isBooked:  isBooked,
		status:    status,
		version:   version,
		createdAt: createdAt,
	}
}

// Reserve moves an open slot to booked and bumps the version.
func (s *Slot) Reserve() error {
	if s.isBooked || s.status == StatusBooked {
		return ErrAlreadyBooked
	}
	s.isBooked = true
	s.status = StatusBooked
	s.version++
	return nil
}

// Release reopens a booked slot. Releasing an open slot is a no-op.
func (s *Slot) Release() bool {
	if !s.isBooked && s.status == StatusOpen {
		return false
	}
	s.isBooked = false
	s.status = StatusOpen
	s.version++
	return true
}

func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.startTime.Before(end) && start.Before(s.endTime)
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) DoctorID() uuid.UUID  { return s.doctorID }
func (s *Slot) StartTime() time.Time { return s.startTime }
func (s *Slot) EndTime() time.Time   { return s.endTime }
func (s *Slot) IsBooked() bool       { return s.isBooked }
func (s *Slot) Status() Status       { return s.status }
func (s *Slot) Version() int64       { return s.version }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }
