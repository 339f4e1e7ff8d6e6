package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, patient_id, doctor_id, slot_id, status, created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&b.DoctorID,
		&b.SlotID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const createBooking = `
INSERT INTO bookings (id, patient_id, doctor_id, slot_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + bookingColumns

type CreateBookingParams struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	SlotID    uuid.UUID
	Status    string
	CreatedAt time.Time
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, createBooking,
		arg.ID,
		arg.PatientID,
		arg.DoctorID,
		arg.SlotID,
		arg.Status,
		arg.CreatedAt,
	))
}

const getBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const getBookingForUpdate = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

func (q *Queries) GetBookingForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Booking, error) {
	return scanBooking(db.QueryRow(ctx, getBookingForUpdate, id))
}

const updateBookingStatus = `
UPDATE bookings
SET status = $2, updated_at = $3
WHERE id = $1 AND status = $4`

type UpdateBookingStatusParams struct {
	ID             uuid.UUID
	Status         string
	UpdatedAt      time.Time
	ExpectedStatus string
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingStatus, arg.ID, arg.Status, arg.UpdatedAt, arg.ExpectedStatus)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Dead-lettered bookings stay pending for manual review and are not picked up again.
const listStalePendingBookingIDs = `
SELECT b.id FROM bookings b
WHERE b.status = 'pending' AND b.created_at < $1
  AND NOT EXISTS (
    SELECT 1 FROM audit_logs a
    WHERE a.target_id = b.id AND a.action = 'AUTO_TIMEOUT_FAILED'
  )
ORDER BY b.created_at
LIMIT $2`

func (q *Queries) ListStalePendingBookingIDs(ctx context.Context, db DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listStalePendingBookingIDs, createdBefore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const getBookingDetail = `
SELECT b.id, b.patient_id, b.doctor_id, b.slot_id, b.status, s.start_time, s.end_time,
       p.transaction_id, p.status, b.created_at, b.updated_at
FROM bookings b
JOIN slots s ON s.id = b.slot_id
LEFT JOIN LATERAL (
    SELECT transaction_id, status FROM payments
    WHERE booking_id = b.id
    ORDER BY created_at DESC
    LIMIT 1
) p ON true
WHERE b.id = $1`

func (q *Queries) GetBookingDetail(ctx context.Context, db DBTX, id uuid.UUID) (BookingDetail, error) {
	var d BookingDetail
	err := db.QueryRow(ctx, getBookingDetail, id).Scan(
		&d.ID,
		&d.PatientID,
		&d.DoctorID,
		&d.SlotID,
		&d.Status,
		&d.StartTime,
		&d.EndTime,
		&d.PaymentTransactionID,
		&d.PaymentStatus,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
