package commands

import (
	"context"
	"log/slog"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/internal/usecase/queries"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type InitiatePaymentCommand struct {
	Actor       user.Identity
	BookingID   uuid.UUID
	AmountMinor int64
}

type InitiatePaymentResult struct {
	Payment *queries.PaymentView
	Created bool
}

// PaymentCallback carries the provider's webhook. Payload is the raw body the signature covers.
type PaymentCallback struct {
	TransactionID string
	Status        string
	Signature     string
	Payload       []byte
}

type CallbackResult struct {
	BookingID     uuid.UUID
	BookingStatus string
	PaymentStatus string
	// Applied is false when the payment was already terminal and nothing changed.
	Applied bool
}

type PaymentCommands interface {
	Initiate(ctx context.Context, cmd InitiatePaymentCommand) (*InitiatePaymentResult, error)
	ProcessCallback(ctx context.Context, cb PaymentCallback) (*CallbackResult, error)
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	cache    shared.Cache
	verifier signature.Verifier
	clock    clock.Clock
	cfg      config.PaymentConfig
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	cache shared.Cache,
	verifier signature.Verifier,
	clock clock.Clock,
	cfg config.PaymentConfig,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		cache:    cache,
		verifier: verifier,
		clock:    clock,
		cfg:      cfg,
	}
}

func (u *paymentCommandsImpl) Initiate(ctx context.Context, cmd InitiatePaymentCommand) (*InitiatePaymentResult, error) {
	amount, err := payment.NewMoney(cmd.AmountMinor, u.cfg.Currency)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAmount)
	}

	var result *InitiatePaymentResult
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()

		b, err := tx.Bookings().LockByID(ctx, cmd.BookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !b.IsOwnedBy(cmd.Actor.UserID) && !cmd.Actor.IsAdmin() {
			return ErrForbidden
		}
		if !b.IsPending() {
			return ErrBookingNotPending
		}

		existing, err := tx.Payments().FindPendingByBooking(ctx, b.ID())
		switch {
		case err == nil:
			if existing.Amount() != amount {
				return ErrPaymentAlreadyInitiated
			}
			result = &InitiatePaymentResult{Payment: toPaymentView(existing)}
			return nil
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		p, err := payment.NewPayment(b.ID(), amount, now)
		if err != nil {
			return errs.Wrap(err, "new payment")
		}
		created, err := tx.Payments().Create(ctx, p)
		if err != nil {
			return err
		}

		entry := audit.NewEntry(cmd.Actor.UserID, audit.ActionPaymentInitiated, b.ID(), map[string]any{
			"transaction_id": created.TransactionID(),
			"amount_minor":   created.Amount().Minor(),
			"currency":       created.Amount().Currency(),
		}, now)
		if err := tx.Audit().Append(ctx, entry); err != nil {
			return err
		}

		result = &InitiatePaymentResult{Payment: toPaymentView(created), Created: true}
		return nil
	})
	if err != nil {
		return nil, storeError(err, ErrBookingNotFound, ErrForbidden, ErrBookingNotPending, ErrPaymentAlreadyInitiated)
	}

	if result.Created {
		slog.InfoContext(ctx, "payment initiated",
			slog.String("booking_id", cmd.BookingID.String()),
			slog.String("transaction_id", result.Payment.TransactionID))
	}
	return result, nil
}

// ProcessCallback verifies the provider signature before touching any state, then
// settles the payment and moves the booking in one transaction.
// Lock order is payment, booking, slot.
func (u *paymentCommandsImpl) ProcessCallback(ctx context.Context, cb PaymentCallback) (*CallbackResult, error) {
	if !u.verifier.Verify(cb.Payload, cb.Signature) {
		slog.WarnContext(ctx, "payment callback rejected: bad signature",
			slog.String("transaction_id", cb.TransactionID))
		return nil, ErrInvalidSignature
	}

	outcome, err := payment.ParseOutcome(cb.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidOutcome)
	}

	var (
		result       *CallbackResult
		releasedFrom uuid.UUID
	)
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		releasedFrom = uuid.Nil
		var txErr error
		result, releasedFrom, txErr = u.settle(ctx, tx, cb.TransactionID, outcome)
		return txErr
	})
	if err != nil {
		return nil, storeError(err, ErrPaymentNotFound, ErrBookingNotFound)
	}

	if releasedFrom != uuid.Nil {
		invalidateSlotListings(ctx, u.cache, releasedFrom)
	}

	slog.InfoContext(ctx, "payment callback processed",
		slog.String("transaction_id", cb.TransactionID),
		slog.String("outcome", outcome.String()),
		slog.String("booking_status", result.BookingStatus),
		slog.Bool("applied", result.Applied))

	return result, nil
}

// settle returns the doctor whose slot was released, or uuid.Nil.
func (u *paymentCommandsImpl) settle(ctx context.Context, tx shared.Tx, transactionID string, outcome payment.Outcome) (*CallbackResult, uuid.UUID, error) {
	now := u.clock.Now()

	p, err := tx.Payments().LockByTransactionID(ctx, transactionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrPaymentNotFound
		}
		return nil, uuid.Nil, err
	}

	if !p.IsPending() {
		b, err := tx.Reads().BookingByID(ctx, p.BookingID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, uuid.Nil, ErrBookingNotFound
			}
			return nil, uuid.Nil, err
		}
		return callbackResult(b, p, false), uuid.Nil, nil
	}

	b, err := tx.Bookings().LockByID(ctx, p.BookingID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, uuid.Nil, ErrBookingNotFound
		}
		return nil, uuid.Nil, err
	}

	if err := p.Settle(outcome, now); err != nil {
		return nil, uuid.Nil, errs.Wrap(err, "settle payment")
	}
	if err := tx.Payments().UpdateStatus(ctx, p); err != nil {
		return nil, uuid.Nil, err
	}

	details := map[string]any{
		"transaction_id": p.TransactionID(),
		"payment_id":     p.ID(),
		"outcome":        outcome.String(),
	}

	// The reaper got here first. Money moved anyway, so record it for refund review
	// and leave the booking and slot alone.
	if !b.IsPending() {
		details["booking_status"] = b.Status().String()
		if err := tx.Audit().Append(ctx, audit.NewEntry(audit.SystemActor, audit.ActionPaymentAfterClose, b.ID(), details, now)); err != nil {
			return nil, uuid.Nil, err
		}
		slog.WarnContext(ctx, "payment settled after booking closed",
			slog.String("booking_id", b.ID().String()),
			slog.String("booking_status", b.Status().String()),
			slog.String("transaction_id", p.TransactionID()))
		return callbackResult(b, p, true), uuid.Nil, nil
	}

	if outcome == payment.OutcomeSuccess {
		if err := u.transition(ctx, tx, b, b.Confirm, audit.ActionPaymentSuccess, topicBookingConfirmed, details, now); err != nil {
			return nil, uuid.Nil, err
		}
		return callbackResult(b, p, true), uuid.Nil, nil
	}

	released, err := releaseSlot(ctx, tx, b.SlotID(), now)
	if err != nil {
		return nil, uuid.Nil, err
	}
	details["slot_released"] = released
	if err := u.transition(ctx, tx, b, b.Fail, audit.ActionPaymentFailed, topicBookingFailed, details, now); err != nil {
		return nil, uuid.Nil, err
	}

	var releasedFrom uuid.UUID
	if released {
		releasedFrom = b.DoctorID()
	}
	return callbackResult(b, p, true), releasedFrom, nil
}

func (u *paymentCommandsImpl) transition(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	apply func(now time.Time) error,
	action audit.Action,
	topic string,
	details map[string]any,
	now time.Time,
) error {
	if err := apply(now); err != nil {
		return errs.Wrap(err, "booking transition")
	}
	if err := tx.Bookings().UpdateStatus(ctx, b, booking.StatusPending); err != nil {
		return err
	}
	if err := tx.Audit().Append(ctx, audit.NewEntry(audit.SystemActor, action, b.ID(), details, now)); err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, notificationKind, topic, bookingEventPayload(b), now)
}

func callbackResult(b *booking.Booking, p *payment.Payment, applied bool) *CallbackResult {
	return &CallbackResult{
		BookingID:     b.ID(),
		BookingStatus: b.Status().String(),
		PaymentStatus: p.Status().String(),
		Applied:       applied,
	}
}
