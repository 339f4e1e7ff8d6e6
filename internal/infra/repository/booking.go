package repository

import (
	"context"

	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository/converter"
	"telemed-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db query.DBTX, arg query.CreateBookingParams) (query.Booking, error)
	GetBookingForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Booking, error)
	UpdateBookingStatus(ctx context.Context, db query.DBTX, arg query.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      query.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db query.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row, err := r.queries.CreateBooking(ctx, r.db, converter.BookingToCreateParams(b))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}

	created, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
	}
	return created, nil
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}

	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	params := query.UpdateBookingStatusParams{
		ID:             b.ID(),
		Status:         b.Status().String(),
		UpdatedAt:      b.UpdatedAt(),
		ExpectedStatus: from.String(),
	}

	affected, err := r.queries.UpdateBookingStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}
