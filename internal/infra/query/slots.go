package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const slotColumns = `id, doctor_id, start_time, end_time, is_booked, status, version, created_at, updated_at`

func scanSlot(row pgx.Row) (Slot, error) {
	var s Slot
	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.StartTime,
		&s.EndTime,
		&s.IsBooked,
		&s.Status,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

const getSlotByID = `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

func (q *Queries) GetSlotByID(ctx context.Context, db DBTX, id uuid.UUID) (Slot, error) {
	return scanSlot(db.QueryRow(ctx, getSlotByID, id))
}

const getSlotForUpdate = `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`

// GetSlotForUpdate takes the exclusive row lock; it is released on commit or rollback.
func (q *Queries) GetSlotForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Slot, error) {
	return scanSlot(db.QueryRow(ctx, getSlotForUpdate, id))
}

const updateSlotOccupancy = `
UPDATE slots
SET is_booked = $2, status = $3, version = $4, updated_at = $5
WHERE id = $1 AND version = $6`

type UpdateSlotOccupancyParams struct {
	ID              uuid.UUID
	IsBooked        bool
	Status          string
	Version         int64
	UpdatedAt       time.Time
	ExpectedVersion int64
}

func (q *Queries) UpdateSlotOccupancy(ctx context.Context, db DBTX, arg UpdateSlotOccupancyParams) (int64, error) {
	tag, err := db.Exec(ctx, updateSlotOccupancy,
		arg.ID,
		arg.IsBooked,
		arg.Status,
		arg.Version,
		arg.UpdatedAt,
		arg.ExpectedVersion,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const createSlot = `
INSERT INTO slots (id, doctor_id, start_time, end_time, is_booked, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, false, $5, 0, $6, $6)`

type CreateSlotParams struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
}

func (q *Queries) CreateSlot(ctx context.Context, db DBTX, arg CreateSlotParams) error {
	_, err := db.Exec(ctx, createSlot,
		arg.ID,
		arg.DoctorID,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const lockDoctorSchedule = `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

// LockDoctorSchedule serializes slot creation per doctor until the transaction ends.
func (q *Queries) LockDoctorSchedule(ctx context.Context, db DBTX, doctorID uuid.UUID) error {
	_, err := db.Exec(ctx, lockDoctorSchedule, doctorID.String())
	return err
}

const countOverlappingSlots = `
SELECT count(*) FROM slots
WHERE doctor_id = $1 AND start_time < $3 AND end_time > $2`

func (q *Queries) CountOverlappingSlots(ctx context.Context, db DBTX, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, countOverlappingSlots, doctorID, start, end).Scan(&n)
	return n, err
}

const listOpenSlots = `
SELECT ` + slotColumns + ` FROM slots
WHERE doctor_id = $1 AND is_booked = false AND status = 'open'
  AND start_time >= $2 AND start_time < $3
ORDER BY start_time
LIMIT $4`

type ListOpenSlotsParams struct {
	DoctorID uuid.UUID
	From     time.Time
	To       time.Time
	Limit    int32
}

func (q *Queries) ListOpenSlots(ctx context.Context, db DBTX, arg ListOpenSlotsParams) ([]Slot, error) {
	rows, err := db.Query(ctx, listOpenSlots, arg.DoctorID, arg.From, arg.To, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
