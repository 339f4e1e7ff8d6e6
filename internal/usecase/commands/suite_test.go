//go:build unit

package commands_test

import (
	"context"
	"time"

	"telemed-booking/internal/domain/slot"
	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/pkg/clock"
	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/signature"
	"telemed-booking/internal/usecase/commands"
	"telemed-booking/tests/common/fakestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// commandSuite wires every command against one in-memory store.
type commandSuite struct {
	suite.Suite
	ctx      context.Context
	store    *fakestore.Store
	cache    *fakestore.Cache
	clock    *clock.MockClock
	cfg      config.Config
	verifier *signature.HMACVerifier

	bookings commands.BookingCommands
	payments commands.PaymentCommands
	slots    commands.SlotCommands
	reaper   commands.ReaperCommands

	doctorID uuid.UUID
}

func (s *commandSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = fakestore.New()
	s.cache = fakestore.NewCache()
	s.clock = clock.NewMockClock(baseTime)
	s.cfg = config.NewTestConfig()
	s.verifier = signature.NewHMACVerifier(s.cfg.Payment.WebhookSecret)
	s.doctorID = uuid.New()

	s.bookings = commands.NewBookingCommands(s.store, s.cache, s.clock, s.cfg.Booking)
	s.payments = commands.NewPaymentCommands(s.store, s.cache, s.verifier, s.clock, s.cfg.Payment)
	s.slots = commands.NewSlotCommands(s.store, s.cache, s.clock)
	s.reaper = commands.NewReaperCommands(s.store, s.cache, s.clock, s.cfg.Reaper)
}

func (s *commandSuite) seedSlot(offset time.Duration) *slot.Slot {
	start := s.clock.Now().Add(offset)
	sl, err := slot.NewSlot(s.doctorID, start, start.Add(30*time.Minute), s.clock.Now())
	s.Require().NoError(err)
	s.store.PutSlot(sl)
	return sl
}

func (s *commandSuite) book(key string, patientID, slotID uuid.UUID) *commands.BookSlotResult {
	res, err := s.bookings.BookSlot(s.ctx, commands.BookSlotCommand{
		IdempotencyKey: key,
		PatientID:      patientID,
		SlotID:         slotID,
	})
	s.Require().NoError(err)
	return res
}

func (s *commandSuite) initiate(patientID, bookingID uuid.UUID) string {
	res, err := s.payments.Initiate(s.ctx, commands.InitiatePaymentCommand{
		Actor:       user.Identity{UserID: patientID, Role: user.RolePatient},
		BookingID:   bookingID,
		AmountMinor: 50000,
	})
	s.Require().NoError(err)
	return res.Payment.TransactionID
}

func (s *commandSuite) callback(txID, status string) (*commands.CallbackResult, error) {
	payload := []byte(`{"transaction_id":"` + txID + `","status":"` + status + `"}`)
	return s.payments.ProcessCallback(s.ctx, commands.PaymentCallback{
		TransactionID: txID,
		Status:        status,
		Signature:     s.verifier.Sign(payload),
		Payload:       payload,
	})
}
