package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, booking_id, amount_minor, currency, status, transaction_id, created_at, updated_at`

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.AmountMinor,
		&p.Currency,
		&p.Status,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const createPayment = `
INSERT INTO payments (id, booking_id, amount_minor, currency, status, transaction_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + paymentColumns

type CreatePaymentParams struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	AmountMinor   int64
	Currency      string
	Status        string
	TransactionID string
	CreatedAt     time.Time
}

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg CreatePaymentParams) (Payment, error) {
	return scanPayment(db.QueryRow(ctx, createPayment,
		arg.ID,
		arg.BookingID,
		arg.AmountMinor,
		arg.Currency,
		arg.Status,
		arg.TransactionID,
		arg.CreatedAt,
	))
}

const getPaymentByTransactionIDForUpdate = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 FOR UPDATE`

func (q *Queries) GetPaymentByTransactionIDForUpdate(ctx context.Context, db DBTX, transactionID string) (Payment, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByTransactionIDForUpdate, transactionID))
}

const getPendingPaymentByBookingID = `
SELECT ` + paymentColumns + ` FROM payments
WHERE booking_id = $1 AND status = 'pending'
ORDER BY created_at DESC
LIMIT 1`

func (q *Queries) GetPendingPaymentByBookingID(ctx context.Context, db DBTX, bookingID uuid.UUID) (Payment, error) {
	return scanPayment(db.QueryRow(ctx, getPendingPaymentByBookingID, bookingID))
}

const updatePaymentStatus = `
UPDATE payments
SET status = $2, updated_at = $3
WHERE id = $1 AND status = 'pending'`

type UpdatePaymentStatusParams struct {
	ID        uuid.UUID
	Status    string
	UpdatedAt time.Time
}

func (q *Queries) UpdatePaymentStatus(ctx context.Context, db DBTX, arg UpdatePaymentStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updatePaymentStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
