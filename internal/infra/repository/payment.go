package repository

import (
	"context"

	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository/converter"
	"telemed-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db query.DBTX, arg query.CreatePaymentParams) (query.Payment, error)
	GetPaymentByTransactionIDForUpdate(ctx context.Context, db query.DBTX, transactionID string) (query.Payment, error)
	GetPendingPaymentByBookingID(ctx context.Context, db query.DBTX, bookingID uuid.UUID) (query.Payment, error)
	UpdatePaymentStatus(ctx context.Context, db query.DBTX, arg query.UpdatePaymentStatusParams) (int64, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      query.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db query.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) (*payment.Payment, error) {
	row, err := r.queries.CreatePayment(ctx, r.db, converter.PaymentToCreateParams(p))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return r.toDomain(row)
}

func (r *PaymentRepository) LockByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentByTransactionIDForUpdate(ctx, r.db, transactionID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock payment", err)
	}
	return r.toDomain(row)
}

func (r *PaymentRepository) FindPendingByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	row, err := r.queries.GetPendingPaymentByBookingID(ctx, r.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pending payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get pending payment", err)
	}
	return r.toDomain(row)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, p *payment.Payment) error {
	params := query.UpdatePaymentStatusParams{
		ID:        p.ID(),
		Status:    p.Status().String(),
		UpdatedAt: p.UpdatedAt(),
	}

	affected, err := r.queries.UpdatePaymentStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("payment already settled", nil, infra.KindConflict)
	}
	return nil
}

func (r *PaymentRepository) toDomain(row query.Payment) (*payment.Payment, error) {
	p, err := converter.PaymentToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert payment", err, infra.KindDBFailure)
	}
	return p, nil
}
