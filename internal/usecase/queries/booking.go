package queries

import (
	"context"

	"telemed-booking/internal/domain/user"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Identity, id uuid.UUID) (*BookingView, error)
	History(ctx context.Context, actor user.Identity, id uuid.UUID) ([]*AuditEntryView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListHistory(ctx context.Context, bookingID uuid.UUID) ([]*AuditEntryView, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Identity, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "find booking")
	}

	if !canView(actor, view) {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) History(ctx context.Context, actor user.Identity, id uuid.UUID) ([]*AuditEntryView, error) {
	if _, err := q.GetByID(ctx, actor, id); err != nil {
		return nil, err
	}

	entries, err := q.repo.ListHistory(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "list booking history")
	}
	return entries, nil
}

// The patient, the booked doctor and admins may read a booking.
func canView(actor user.Identity, view *BookingView) bool {
	return actor.CanAccess(view.PatientID) || actor.UserID == view.DoctorID
}
