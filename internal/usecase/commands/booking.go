package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const BookSlotEndpoint = "POST /bookings"

type BookSlotCommand struct {
	IdempotencyKey string
	PatientID      uuid.UUID
	SlotID         uuid.UUID
}

type BookSlotResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	BookSlot(ctx context.Context, cmd BookSlotCommand) (*BookSlotResult, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.Cache
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	cache shared.Cache,
	clock clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		cache: cache,
		clock: clock,
		cfg:   cfg,
	}
}

func (u *bookingCommandsImpl) BookSlot(ctx context.Context, cmd BookSlotCommand) (*BookSlotResult, error) {
	if cmd.IdempotencyKey == "" {
		return nil, ErrIdempotencyKeyRequired
	}
	hash := requestHash(BookSlotEndpoint, cmd.PatientID.String(), cmd.SlotID.String())

	replayed, err := u.replay(ctx, cmd.IdempotencyKey, hash)
	if err != nil || replayed != nil {
		return replayed, err
	}

	var view *queries.BookingView
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var txErr error
		view, txErr = u.reserve(ctx, tx, cmd, hash)
		return txErr
	})
	if err != nil {
		if errs.Is(err, ErrIdempotencyInProgress) {
			// The competing request may have committed while we waited on its key.
			if replayed, rerr := u.replay(ctx, cmd.IdempotencyKey, hash); rerr != nil || replayed != nil {
				return replayed, rerr
			}
		}
		return nil, storeError(err, ErrSlotNotFound, ErrSlotAlreadyBooked, ErrIdempotencyInProgress)
	}

	invalidateSlotListings(ctx, u.cache, view.DoctorID)

	slog.InfoContext(ctx, "booking created",
		slog.String("booking_id", view.ID.String()),
		slog.String("slot_id", view.SlotID.String()),
		slog.String("idempotency_key", cmd.IdempotencyKey))

	return &BookSlotResult{Booking: view}, nil
}

// reserve runs inside one transaction: claim the key, lock the slot, occupy it,
// insert the booking with its audit and outbox rows, then record the response.
func (u *bookingCommandsImpl) reserve(ctx context.Context, tx shared.Tx, cmd BookSlotCommand, hash string) (*queries.BookingView, error) {
	now := u.clock.Now()

	if err := tx.SetLockTimeout(ctx, u.cfg.LockTimeout); err != nil {
		return nil, err
	}

	claimed, err := tx.Idempotency().Claim(ctx, shared.IdempotencyClaim{
		Endpoint:    BookSlotEndpoint,
		Key:         cmd.IdempotencyKey,
		UserID:      cmd.PatientID,
		RequestHash: hash,
		Now:         now,
		ExpiresAt:   now.Add(u.cfg.IdempotencyTTL),
	})
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrIdempotencyInProgress
	}

	s, err := tx.Slots().LockByID(ctx, cmd.SlotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if err := s.Reserve(); err != nil {
		return nil, ErrSlotAlreadyBooked
	}
	if err := tx.Slots().SaveOccupancy(ctx, s, now); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	b, err := booking.NewBooking(cmd.PatientID, s.DoctorID(), s.ID(), now)
	if err != nil {
		return nil, errs.Wrap(err, "new booking")
	}
	created, err := tx.Bookings().Create(ctx, b)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}

	entry := audit.NewEntry(cmd.PatientID, audit.ActionBookingCreated, created.ID(), map[string]any{
		"slot_id":         s.ID(),
		"idempotency_key": cmd.IdempotencyKey,
	}, now)
	if err := tx.Audit().Append(ctx, entry); err != nil {
		return nil, err
	}
	if err := tx.Notifications().CreateJob(ctx, notificationKind, topicBookingCreated, bookingEventPayload(created), now); err != nil {
		return nil, err
	}

	view := toBookingView(created, s)
	body, err := json.Marshal(view)
	if err != nil {
		return nil, errs.Wrap(err, "encode booking response")
	}
	if err := tx.Idempotency().Complete(ctx, BookSlotEndpoint, cmd.IdempotencyKey, http.StatusCreated, body); err != nil {
		return nil, err
	}

	return view, nil
}

// replay returns the stored response for a completed, unexpired key.
func (u *bookingCommandsImpl) replay(ctx context.Context, key, hash string) (*BookSlotResult, error) {
	record, err := u.uow.CommandReads().IdempotencyByKey(ctx, BookSlotEndpoint, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, storeError(err)
	}
	if record.IsExpired(u.clock.Now()) {
		return nil, nil
	}
	if record.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}
	if !record.IsCompleted() {
		return nil, ErrIdempotencyInProgress
	}

	var view queries.BookingView
	if err := json.Unmarshal(record.ResponseBody, &view); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode stored booking response"), ErrDatabaseOperationFailed)
	}

	slog.InfoContext(ctx, "booking replayed from idempotency ledger",
		slog.String("booking_id", view.ID.String()),
		slog.String("idempotency_key", key))

	return &BookSlotResult{Booking: &view, IsReplayed: true}, nil
}
