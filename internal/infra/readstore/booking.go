package readstore

import (
	"context"
	"encoding/json"
	"time"

	"telemed-booking/internal/domain/booking"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository/converter"
	"telemed-booking/internal/pkg/pgconv"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Booking, error)
	GetBookingDetail(ctx context.Context, db query.DBTX, id uuid.UUID) (query.BookingDetail, error)
	ListAuditLogsByTarget(ctx context.Context, db query.DBTX, targetID uuid.UUID) ([]query.AuditLog, error)
	ListStalePendingBookingIDs(ctx context.Context, db query.DBTX, createdBefore time.Time, limit int32) ([]uuid.UUID, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      query.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db query.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingDetail(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &queries.BookingView{
		ID:                   row.ID,
		PatientID:            row.PatientID,
		DoctorID:             row.DoctorID,
		SlotID:               row.SlotID,
		Status:               row.Status,
		StartTime:            row.StartTime,
		EndTime:              row.EndTime,
		PaymentTransactionID: pgconv.StringPtrFromPgtype(row.PaymentTransactionID),
		PaymentStatus:        pgconv.StringPtrFromPgtype(row.PaymentStatus),
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}, nil
}

func (r *BookingReadStore) ListHistory(ctx context.Context, bookingID uuid.UUID) ([]*queries.AuditEntryView, error) {
	rows, err := r.queries.ListAuditLogsByTarget(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking history", err)
	}

	result := make([]*queries.AuditEntryView, 0, len(rows))
	for _, row := range rows {
		var details map[string]any
		if len(row.Details) > 0 {
			if err := json.Unmarshal(row.Details, &details); err != nil {
				return nil, infra.WrapRepoErr("failed to decode audit details", err, infra.KindDBFailure)
			}
		}
		result = append(result, &queries.AuditEntryView{
			ID:          row.ID,
			PerformedBy: pgconv.UUIDPtrFromPgtype(row.PerformedBy),
			Action:      row.Action,
			TargetID:    row.TargetID,
			Details:     details,
			CreatedAt:   row.CreatedAt,
		})
	}
	return result, nil
}

// FindEntity loads the booking without locking it.
func (r *BookingReadStore) FindEntity(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingReadStore) StalePendingIDs(ctx context.Context, createdBefore time.Time, limit int32) ([]uuid.UUID, error) {
	ids, err := r.queries.ListStalePendingBookingIDs(ctx, r.db, createdBefore, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale pending bookings", err)
	}
	return ids, nil
}
