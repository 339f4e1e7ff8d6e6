//go:build unit || e2e

package fakestore

import (
	"context"
	"sort"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type fakeTx struct {
	store *Store
	st    *state
}

func (t *fakeTx) Slots() shared.SlotRepository                 { return (*slotRepo)(t) }
func (t *fakeTx) Bookings() shared.BookingRepository           { return (*bookingRepo)(t) }
func (t *fakeTx) Payments() shared.PaymentRepository           { return (*paymentRepo)(t) }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return (*idempotencyRepo)(t) }
func (t *fakeTx) Audit() shared.AuditRepository                { return (*auditRepo)(t) }
func (t *fakeTx) Notifications() shared.NotificationRepository { return (*notificationRepo)(t) }
func (t *fakeTx) Reads() shared.CommandReads                   { return &stateReads{st: t.st} }

func (t *fakeTx) SetLockTimeout(_ context.Context, _ time.Duration) error {
	return t.store.fault("Tx.SetLockTimeout")
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func conflict(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

type slotRepo fakeTx

func (r *slotRepo) LockByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	if err := r.store.fault("Slots.LockByID"); err != nil {
		return nil, err
	}
	row, ok := r.st.slots[id]
	if !ok {
		return nil, notFound("lock slot")
	}
	return row.toDomain(), nil
}

func (r *slotRepo) SaveOccupancy(_ context.Context, s *slot.Slot, _ time.Time) error {
	if err := r.store.fault("Slots.SaveOccupancy"); err != nil {
		return err
	}
	row, ok := r.st.slots[s.ID()]
	if !ok || row.version != s.Version()-1 {
		return conflict("save slot occupancy")
	}
	r.st.slots[s.ID()] = slotToRow(s)
	return nil
}

func (r *slotRepo) Create(_ context.Context, s *slot.Slot) error {
	if err := r.store.fault("Slots.Create"); err != nil {
		return err
	}
	r.st.slots[s.ID()] = slotToRow(s)
	return nil
}

func (r *slotRepo) LockSchedule(_ context.Context, _ uuid.UUID) error {
	return r.store.fault("Slots.LockSchedule")
}

func (r *slotRepo) HasOverlap(_ context.Context, doctorID uuid.UUID, start, end time.Time) (bool, error) {
	if err := r.store.fault("Slots.HasOverlap"); err != nil {
		return false, err
	}
	for _, row := range r.st.slots {
		if row.doctorID == doctorID && row.start.Before(end) && start.Before(row.end) {
			return true, nil
		}
	}
	return false, nil
}

type bookingRepo fakeTx

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
	if err := r.store.fault("Bookings.Create"); err != nil {
		return nil, err
	}
	for _, row := range r.st.bookings {
		live := row.status == booking.StatusPending || row.status == booking.StatusConfirmed
		if live && row.slotID == b.SlotID() {
			return nil, infra.WrapRepoErr("create booking", nil, infra.KindDuplicateKey)
		}
	}
	if _, ok := r.st.slots[b.SlotID()]; !ok {
		return nil, infra.WrapRepoErr("create booking", nil, infra.KindForeignKeyViolated)
	}
	r.st.bookings[b.ID()] = bookingToRow(b)
	return r.st.bookings[b.ID()].toDomain(), nil
}

func (r *bookingRepo) LockByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.store.fault("Bookings.LockByID"); err != nil {
		return nil, err
	}
	row, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("lock booking")
	}
	return row.toDomain(), nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, b *booking.Booking, from booking.Status) error {
	if err := r.store.fault("Bookings.UpdateStatus"); err != nil {
		return err
	}
	row, ok := r.st.bookings[b.ID()]
	if !ok || row.status != from {
		return conflict("update booking status")
	}
	r.st.bookings[b.ID()] = bookingToRow(b)
	return nil
}

type paymentRepo fakeTx

func (r *paymentRepo) Create(_ context.Context, p *payment.Payment) (*payment.Payment, error) {
	if err := r.store.fault("Payments.Create"); err != nil {
		return nil, err
	}
	for _, row := range r.st.payments {
		if row.transactionID == p.TransactionID() ||
			(row.bookingID == p.BookingID() && row.status == payment.StatusPending) {
			return nil, infra.WrapRepoErr("create payment", nil, infra.KindDuplicateKey)
		}
	}
	r.st.payments[p.ID()] = paymentToRow(p)
	return r.st.payments[p.ID()].toDomain(), nil
}

func (r *paymentRepo) LockByTransactionID(_ context.Context, txID string) (*payment.Payment, error) {
	if err := r.store.fault("Payments.LockByTransactionID"); err != nil {
		return nil, err
	}
	for _, row := range r.st.payments {
		if row.transactionID == txID {
			return row.toDomain(), nil
		}
	}
	return nil, notFound("lock payment")
}

func (r *paymentRepo) FindPendingByBooking(_ context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	for _, row := range r.st.payments {
		if row.bookingID == bookingID && row.status == payment.StatusPending {
			return row.toDomain(), nil
		}
	}
	return nil, notFound("find pending payment")
}

func (r *paymentRepo) UpdateStatus(_ context.Context, p *payment.Payment) error {
	if err := r.store.fault("Payments.UpdateStatus"); err != nil {
		return err
	}
	row, ok := r.st.payments[p.ID()]
	if !ok || row.status != payment.StatusPending {
		return conflict("update payment status")
	}
	r.st.payments[p.ID()] = paymentToRow(p)
	return nil
}

type idempotencyRepo fakeTx

func (r *idempotencyRepo) Claim(_ context.Context, c shared.IdempotencyClaim) (bool, error) {
	if err := r.store.fault("Idempotency.Claim"); err != nil {
		return false, err
	}
	k := idemKey(c.Endpoint, c.Key)
	if existing, ok := r.st.keys[k]; ok && !existing.IsExpired(c.Now) {
		return false, nil
	}
	r.st.keys[k] = shared.IdempotencyRecord{
		Endpoint:    c.Endpoint,
		Key:         c.Key,
		UserID:      c.UserID,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: c.RequestHash,
		ExpiresAt:   c.ExpiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, endpoint, key string, status int, body []byte) error {
	if err := r.store.fault("Idempotency.Complete"); err != nil {
		return err
	}
	k := idemKey(endpoint, key)
	rec, ok := r.st.keys[k]
	if !ok || rec.IsCompleted() {
		return conflict("complete idempotency key")
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResponseStatus = status
	rec.ResponseBody = append([]byte(nil), body...)
	r.st.keys[k] = rec
	return nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	if err := r.store.fault("Idempotency.DeleteExpired"); err != nil {
		return 0, err
	}
	var n int64
	for k, rec := range r.st.keys {
		if rec.IsExpired(now) {
			delete(r.st.keys, k)
			n++
		}
	}
	return n, nil
}

type auditRepo fakeTx

func (r *auditRepo) Append(_ context.Context, e audit.Entry) error {
	if err := r.store.fault("Audit.Append"); err != nil {
		return err
	}
	r.st.audit = append(r.st.audit, e)
	return nil
}

type notificationRepo fakeTx

func (r *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if err := r.store.fault("Notifications.CreateJob"); err != nil {
		return err
	}
	r.st.jobs = append(r.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type stateReads struct {
	st *state
}

func (r *stateReads) IdempotencyByKey(_ context.Context, endpoint, key string) (*shared.IdempotencyRecord, error) {
	rec, ok := r.st.keys[idemKey(endpoint, key)]
	if !ok {
		return nil, notFound("get idempotency key")
	}
	return &rec, nil
}

func (r *stateReads) StalePendingBookingIDs(_ context.Context, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	deadLettered := make(map[uuid.UUID]bool)
	for _, e := range r.st.audit {
		if e.Action() == audit.ActionAutoTimeoutFailed {
			deadLettered[e.TargetID()] = true
		}
	}
	var rows []bookingRow
	for _, row := range r.st.bookings {
		if row.status == booking.StatusPending && row.createdAt.Before(createdBefore) && !deadLettered[row.id] {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.Before(rows[j].createdAt) })
	ids := make([]uuid.UUID, 0, len(rows))
	for i, row := range rows {
		if int32(i) >= limit {
			break
		}
		ids = append(ids, row.id)
	}
	return ids, nil
}

func (r *stateReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("get booking")
	}
	return row.toDomain(), nil
}

// committedReads sees only committed state, like a read outside any transaction.
type committedReads struct {
	store *Store
}

func (r *committedReads) IdempotencyByKey(ctx context.Context, endpoint, key string) (*shared.IdempotencyRecord, error) {
	if err := r.store.fault("Reads.IdempotencyByKey"); err != nil {
		return nil, err
	}
	return (&stateReads{st: r.store.snapshot()}).IdempotencyByKey(ctx, endpoint, key)
}

func (r *committedReads) StalePendingBookingIDs(ctx context.Context, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	if err := r.store.fault("Reads.StalePendingBookingIDs"); err != nil {
		return nil, err
	}
	return (&stateReads{st: r.store.snapshot()}).StalePendingBookingIDs(ctx, createdBefore, limit)
}

func (r *committedReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return (&stateReads{st: r.store.snapshot()}).BookingByID(ctx, id)
}
