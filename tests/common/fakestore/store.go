//go:build unit || e2e

// Package fakestore is an in-memory shared.UnitOfWork for use case tests.
// Transactions are fully serialized and roll back on error, which is enough to
// reason about row-lock semantics without a database.
package fakestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotRow struct {
	id, doctorID uuid.UUID
	start, end   time.Time
	isBooked     bool
	status       slot.Status
	version      int64
	createdAt    time.Time
}

type bookingRow struct {
	id, patientID, doctorID, slotID uuid.UUID
	status                          booking.Status
	createdAt, updatedAt            time.Time
}

type paymentRow struct {
	id, bookingID        uuid.UUID
	amount               payment.Money
	status               payment.Status
	transactionID        string
	createdAt, updatedAt time.Time
}

// Job is a queued outbox row.
type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type state struct {
	slots    map[uuid.UUID]slotRow
	bookings map[uuid.UUID]bookingRow
	payments map[uuid.UUID]paymentRow
	keys     map[string]shared.IdempotencyRecord
	audit    []audit.Entry
	jobs     []Job
}

func newState() *state {
	return &state{
		slots:    map[uuid.UUID]slotRow{},
		bookings: map[uuid.UUID]bookingRow{},
		payments: map[uuid.UUID]paymentRow{},
		keys:     map[string]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.keys {
		c.keys[k] = v
	}
	c.audit = append([]audit.Entry(nil), s.audit...)
	c.jobs = append([]Job(nil), s.jobs...)
	return c
}

type Store struct {
	txMu sync.Mutex // held for the whole of Within
	mu   sync.Mutex // guards committed and faults

	committed *state
	faults    map[string][]error
	commits   int
	rollbacks int
}

func New() *Store {
	return &Store{
		committed: newState(),
		faults:    map[string][]error{},
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("begin transaction", err)
	}

	s.mu.Lock()
	work := s.committed.clone()
	s.mu.Unlock()

	if err := fn(ctx, &fakeTx{store: s, st: work}); err != nil {
		s.mu.Lock()
		s.rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.commits++
	s.mu.Unlock()
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &committedReads{store: s}
}

// FailOn queues errors returned by the next calls of op, e.g. "Bookings.LockByID".
func (s *Store) FailOn(op string, errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = append(s.faults[op], errs...)
}

func (s *Store) fault(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.faults[op]
	if len(queue) == 0 {
		return nil
	}
	s.faults[op] = queue[1:]
	return queue[0]
}

// Transient builds an error the use cases treat as retryable.
func Transient(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindTransient)
}

// Failure builds a non-retryable store error.
func Failure(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDBFailure)
}

func (s *Store) snapshot() *state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) Rollbacks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbacks
}

// Seeding helpers write straight to committed state.

func (s *Store) PutSlot(sl *slot.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.slots[sl.ID()] = slotToRow(sl)
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.bookings[b.ID()] = bookingToRow(b)
}

func (s *Store) PutPayment(p *payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.payments[p.ID()] = paymentToRow(p)
}

// Inspection helpers read committed state.

func (s *Store) Slot(id uuid.UUID) *slot.Slot {
	row, ok := s.snapshot().slots[id]
	if !ok {
		return nil
	}
	return row.toDomain()
}

func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	row, ok := s.snapshot().bookings[id]
	if !ok {
		return nil
	}
	return row.toDomain()
}

func (s *Store) Bookings() []*booking.Booking {
	st := s.snapshot()
	out := make([]*booking.Booking, 0, len(st.bookings))
	for _, row := range st.bookings {
		out = append(out, row.toDomain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out
}

func (s *Store) PaymentByTransaction(txID string) *payment.Payment {
	for _, row := range s.snapshot().payments {
		if row.transactionID == txID {
			return row.toDomain()
		}
	}
	return nil
}

func (s *Store) Payments() []*payment.Payment {
	st := s.snapshot()
	out := make([]*payment.Payment, 0, len(st.payments))
	for _, row := range st.payments {
		out = append(out, row.toDomain())
	}
	return out
}

func (s *Store) AuditEntries() []audit.Entry {
	return append([]audit.Entry(nil), s.snapshot().audit...)
}

func (s *Store) AuditByAction(action audit.Action) []audit.Entry {
	var out []audit.Entry
	for _, e := range s.snapshot().audit {
		if e.Action() == action {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) Jobs() []Job {
	return append([]Job(nil), s.snapshot().jobs...)
}

func (s *Store) IdempotencyRecord(endpoint, key string) (shared.IdempotencyRecord, bool) {
	rec, ok := s.snapshot().keys[idemKey(endpoint, key)]
	return rec, ok
}

func idemKey(endpoint, key string) string {
	return endpoint + "\x00" + key
}

func slotToRow(sl *slot.Slot) slotRow {
	return slotRow{
		id:        sl.ID(),
		doctorID:  sl.DoctorID(),
		start:     sl.StartTime(),
		end:       sl.EndTime(),
		isBooked:  sl.IsBooked(),
		status:    sl.Status(),
		version:   sl.Version(),
		createdAt: sl.CreatedAt(),
	}
}

func (r slotRow) toDomain() *slot.Slot {
	return slot.ReconstructSlot(r.id, r.doctorID, r.start, r.end, r.isBooked, r.status, r.version, r.createdAt)
}

func bookingToRow(b *booking.Booking) bookingRow {
	return bookingRow{
		id:        b.ID(),
		patientID: b.PatientID(),
		doctorID:  b.DoctorID(),
		slotID:    b.SlotID(),
		status:    b.Status(),
		createdAt: b.CreatedAt(),
		updatedAt: b.UpdatedAt(),
	}
}

func (r bookingRow) toDomain() *booking.Booking {
	return booking.ReconstructBooking(r.id, r.patientID, r.doctorID, r.slotID, r.status, r.createdAt, r.updatedAt)
}

func paymentToRow(p *payment.Payment) paymentRow {
	return paymentRow{
		id:            p.ID(),
		bookingID:     p.BookingID(),
		amount:        p.Amount(),
		status:        p.Status(),
		transactionID: p.TransactionID(),
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}
}

func (r paymentRow) toDomain() *payment.Payment {
	return payment.ReconstructPayment(r.id, r.bookingID, r.amount, r.status, r.transactionID, r.createdAt, r.updatedAt)
}
