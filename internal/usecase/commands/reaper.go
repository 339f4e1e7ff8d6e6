package commands

import (
	"context"
	"log/slog"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type SweepResult struct {
	Scanned      int
	Cancelled    int
	Skipped      int
	DeadLettered int
}

// ReaperCommands reclaims slots held by bookings whose payment never arrived.
type ReaperCommands interface {
	Sweep(ctx context.Context) (*SweepResult, error)
	PurgeExpiredKeys(ctx context.Context) (int64, error)
}

type reaperCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.Cache
	clock clock.Clock
	cfg   config.ReaperConfig
}

func NewReaperCommands(
	uow shared.UnitOfWork,
	cache shared.Cache,
	clock clock.Clock,
	cfg config.ReaperConfig,
) ReaperCommands {
	return &reaperCommandsImpl{
		uow:   uow,
		cache: cache,
		clock: clock,
		cfg:   cfg,
	}
}

type reapOutcome int

const (
	reapSkipped reapOutcome = iota
	reapCancelled
)

// Sweep cancels every stale pending booking it can see, one transaction per booking.
// A booking that keeps failing is dead-lettered and the sweep moves on.
func (u *reaperCommandsImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	cutoff := u.clock.Now().Add(-u.cfg.StaleAfter)

	ids, err := u.uow.CommandReads().StalePendingBookingIDs(ctx, cutoff, u.cfg.BatchSize)
	if err != nil {
		return nil, storeError(errs.Wrap(err, "list stale bookings"))
	}

	result := &SweepResult{Scanned: len(ids)}
	for _, id := range ids {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		outcome, attempts, err := u.reapWithRetry(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			u.deadLetter(ctx, id, attempts, err)
			result.DeadLettered++
			continue
		}
		switch outcome {
		case reapCancelled:
			result.Cancelled++
		default:
			result.Skipped++
		}
	}

	if result.Scanned > 0 {
		slog.InfoContext(ctx, "reaper sweep finished",
			slog.Int("scanned", result.Scanned),
			slog.Int("cancelled", result.Cancelled),
			slog.Int("skipped", result.Skipped),
			slog.Int("dead_lettered", result.DeadLettered))
	}
	return result, nil
}

func (u *reaperCommandsImpl) reapWithRetry(ctx context.Context, id uuid.UUID) (reapOutcome, int, error) {
	var (
		outcome  reapOutcome
		attempts int
	)

	op := func() error {
		attempts++
		var err error
		outcome, err = u.reapOne(ctx, id)
		if err == nil {
			return nil
		}
		if infra.IsTransient(err) {
			return err
		}
		return backoff.Permanent(errs.Mark(err, ErrPermanentItemFailure))
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = u.cfg.InitialBackoff
	policy.MaxInterval = u.cfg.MaxBackoff
	policy.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "reaper retrying booking",
			slog.String("booking_id", id.String()),
			slog.Int("attempt", attempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(policy, u.cfg.MaxRetries), ctx), notify)
	return outcome, attempts, err
}

// reapOne re-checks the booking under its row lock; a callback may have settled it since it was listed.
func (u *reaperCommandsImpl) reapOne(ctx context.Context, id uuid.UUID) (reapOutcome, error) {
	outcome := reapSkipped
	var doctorID uuid.UUID

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		outcome = reapSkipped
		now := u.clock.Now()

		b, err := tx.Bookings().LockByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		if !b.IsPending() || !b.IsStale(now, u.cfg.StaleAfter) {
			return nil
		}

		released, err := releaseSlot(ctx, tx, b.SlotID(), now)
		if err != nil {
			return err
		}
		if err := b.Cancel(now); err != nil {
			return errs.Wrap(err, "cancel booking")
		}
		if err := tx.Bookings().UpdateStatus(ctx, b, booking.StatusPending); err != nil {
			return err
		}
		if err := tx.Audit().Append(ctx, audit.NewEntry(audit.SystemActor, audit.ActionAutoTimeout, b.ID(), map[string]any{
			"slot_id":       b.SlotID(),
			"slot_released": released,
			"stale_after":   u.cfg.StaleAfter.String(),
		}, now)); err != nil {
			return err
		}
		if err := tx.Notifications().CreateJob(ctx, notificationKind, topicBookingCancelled, bookingEventPayload(b), now); err != nil {
			return err
		}

		outcome = reapCancelled
		doctorID = b.DoctorID()
		return nil
	})
	if err != nil {
		return reapSkipped, err
	}

	if outcome == reapCancelled {
		invalidateSlotListings(ctx, u.cache, doctorID)
		slog.InfoContext(ctx, "stale booking cancelled", slog.String("booking_id", id.String()))
	}
	return outcome, nil
}

// deadLetter records a booking the reaper gave up on. Failures here are only logged.
func (u *reaperCommandsImpl) deadLetter(ctx context.Context, id uuid.UUID, attempts int, cause error) {
	slog.ErrorContext(ctx, "reaper gave up on booking",
		slog.String("booking_id", id.String()),
		slog.Int("attempts", attempts),
		slog.Any("error", cause))

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Audit().Append(ctx, audit.NewEntry(audit.SystemActor, audit.ActionAutoTimeoutFailed, id, map[string]any{
			"error":     cause.Error(),
			"attempts":  attempts,
			"permanent": errs.Is(cause, ErrPermanentItemFailure),
		}, u.clock.Now()))
	})
	if err != nil {
		slog.ErrorContext(ctx, "dead-letter audit write failed",
			slog.String("booking_id", id.String()),
			slog.Any("error", err))
	}
}

// PurgeExpiredKeys drops idempotency records past their retention window.
func (u *reaperCommandsImpl) PurgeExpiredKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		purged, err = tx.Idempotency().DeleteExpired(ctx, u.clock.Now())
		return err
	})
	if err != nil {
		return 0, storeError(err)
	}
	if purged > 0 {
		slog.InfoContext(ctx, "expired idempotency keys purged", slog.Int64("count", purged))
	}
	return purged, nil
}
