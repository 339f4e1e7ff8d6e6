package commands

import (
	"context"
	"log/slog"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSlotCommand struct {
	Actor     user.Identity
	DoctorID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type SlotCommands interface {
	CreateSlot(ctx context.Context, cmd CreateSlotCommand) (*queries.SlotView, error)
}

type slotCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.Cache
	clock clock.Clock
}

func NewSlotCommands(uow shared.UnitOfWork, cache shared.Cache, clock clock.Clock) SlotCommands {
	return &slotCommandsImpl{
		uow:   uow,
		cache: cache,
		clock: clock,
	}
}

func (u *slotCommandsImpl) CreateSlot(ctx context.Context, cmd CreateSlotCommand) (*queries.SlotView, error) {
	// Doctors publish their own schedule; admins may publish for anyone.
	if !cmd.Actor.IsAdmin() && !(cmd.Actor.Role == user.RoleDoctor && cmd.Actor.UserID == cmd.DoctorID) {
		return nil, ErrForbidden
	}

	s, err := slot.NewSlot(cmd.DoctorID, cmd.StartTime.UTC(), cmd.EndTime.UTC(), u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSlot)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Serializes concurrent inserts for the same doctor so the overlap check holds.
		if err := tx.Slots().LockSchedule(ctx, s.DoctorID()); err != nil {
			return err
		}
		overlaps, err := tx.Slots().HasOverlap(ctx, s.DoctorID(), s.StartTime(), s.EndTime())
		if err != nil {
			return err
		}
		if overlaps {
			return ErrSlotOverlap
		}
		if err := tx.Slots().Create(ctx, s); err != nil {
			return err
		}
		return tx.Audit().Append(ctx, audit.NewEntry(cmd.Actor.UserID, audit.ActionSlotCreated, s.ID(), map[string]any{
			"doctor_id":  s.DoctorID(),
			"start_time": s.StartTime(),
			"end_time":   s.EndTime(),
		}, u.clock.Now()))
	})
	if err != nil {
		return nil, storeError(err, ErrSlotOverlap)
	}

	invalidateSlotListings(ctx, u.cache, s.DoctorID())
	slog.InfoContext(ctx, "slot created",
		slog.String("slot_id", s.ID().String()),
		slog.String("doctor_id", s.DoctorID().String()))

	return toSlotView(s), nil
}
