package payment

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("invalid payment status")
	ErrInvalidOutcome  = errors.New("invalid payment outcome")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrAlreadySettled  = errors.New("payment already settled")
	ErrMissingBooking  = errors.New("payment requires a booking")
)

const transactionIDPrefix = "tx_"

type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        Money
	status        Status
	transactionID string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(bookingID uuid.UUID, amount Money, now time.Time) (*Payment, error) {
	if bookingID == uuid.Nil {
		return nil, ErrMissingBooking
	}
	txID, err := newTransactionID()
	if err != nil {
		return nil, err
	}
	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		status:        StatusPending,
		transactionID: txID,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructPayment(
	id, bookingID uuid.UUID,
	amount Money,
	status Status,
	transactionID string,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		amount:        amount,
		status:        status,
		transactionID: transactionID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Settle applies a provider outcome. A terminal status is set at most once.
func (p *Payment) Settle(outcome Outcome, now time.Time) error {
	if p.status != StatusPending {
		return ErrAlreadySettled
	}
	switch outcome {
	case OutcomeSuccess:
		p.status = StatusSuccess
	case OutcomeFailed:
		p.status = StatusFailed
	default:
		return ErrInvalidOutcome
	}
	p.updatedAt = now
	return nil
}

func (p *Payment) IsPending() bool {
	return p.status == StatusPending
}

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) Amount() Money         { return p.amount }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }

func newTransactionID() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return transactionIDPrefix + hex.EncodeToString(buf), nil
}
