package repository

import (
	"context"
	"time"

	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository/converter"
	"telemed-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SlotWriteQueries interface {
	GetSlotForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Slot, error)
	UpdateSlotOccupancy(ctx context.Context, db query.DBTX, arg query.UpdateSlotOccupancyParams) (int64, error)
	CreateSlot(ctx context.Context, db query.DBTX, arg query.CreateSlotParams) error
	LockDoctorSchedule(ctx context.Context, db query.DBTX, doctorID uuid.UUID) error
	CountOverlappingSlots(ctx context.Context, db query.DBTX, doctorID uuid.UUID, start, end time.Time) (int64, error)
}

type SlotRepository struct {
	queries SlotWriteQueries
	db      query.DBTX
}

func NewSlotRepository(queries SlotWriteQueries, db query.DBTX) *SlotRepository {
	return &SlotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SlotRepository) LockByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	row, err := r.queries.GetSlotForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}

	s, err := converter.SlotToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert slot", err, infra.KindDBFailure)
	}
	return s, nil
}

// SaveOccupancy writes the slot's current occupancy; the row must still carry the version before the change.
func (r *SlotRepository) SaveOccupancy(ctx context.Context, s *slot.Slot, at time.Time) error {
	params := query.UpdateSlotOccupancyParams{
		ID:              s.ID(),
		IsBooked:        s.IsBooked(),
		Status:          s.Status().String(),
		Version:         s.Version(),
		UpdatedAt:       at,
		ExpectedVersion: s.Version() - 1,
	}

	affected, err := r.queries.UpdateSlotOccupancy(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update slot occupancy", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("slot version changed", nil, infra.KindConflict)
	}
	return nil
}

func (r *SlotRepository) Create(ctx context.Context, s *slot.Slot) error {
	if err := r.queries.CreateSlot(ctx, r.db, converter.SlotToCreateParams(s)); err != nil {
		return infra.WrapRepoErr("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) LockSchedule(ctx context.Context, doctorID uuid.UUID) error {
	if err := r.queries.LockDoctorSchedule(ctx, r.db, doctorID); err != nil {
		return infra.WrapRepoErr("failed to lock doctor schedule", err)
	}
	return nil
}

func (r *SlotRepository) HasOverlap(ctx context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error) {
	n, err := r.queries.CountOverlappingSlots(ctx, r.db, doctorID, start, end)
	if err != nil {
		return false, infra.WrapRepoErr("failed to count overlapping slots", err)
	}
	return n > 0, nil
}
