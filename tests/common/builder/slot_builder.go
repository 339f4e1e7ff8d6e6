//go:build unit || e2e

package builder

import (
	"time"

	domslot "telemed-booking/internal/domain/slot"
	reqdto "telemed-booking/internal/handler/dto/request"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	IsBooked  bool
	Status    domslot.Status
	Version   int64
	CreatedAt time.Time
}

func NewSlotBuilder() *SlotBuilder {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	return &SlotBuilder{
		ID:        uuid.New(),
		DoctorID:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    domslot.StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) Booked() *SlotBuilder {
	b.IsBooked = true
	b.Status = domslot.StatusBooked
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() *domslot.Slot {
	return domslot.ReconstructSlot(b.ID, b.DoctorID, b.StartTime, b.EndTime, b.IsBooked, b.Status, b.Version, b.CreatedAt)
}

func (b *SlotBuilder) BuildInfra() query.Slot {
	return query.Slot{
		ID:        b.ID,
		DoctorID:  b.DoctorID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		IsBooked:  b.IsBooked,
		Status:    string(b.Status),
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	return &queries.SlotView{
		ID:        b.ID,
		DoctorID:  b.DoctorID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
	}
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	doctorID := b.DoctorID
	return reqdto.CreateSlotRequest{
		DoctorID:  &doctorID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
