//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"telemed-booking/internal/domain/payment"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository"
	repositorymock "telemed-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func paymentRow(now time.Time, status string) query.Payment {
	return query.Payment{
		ID:            uuid.New(),
		BookingID:     uuid.New(),
		AmountMinor:   50000,
		Currency:      "INR",
		Status:        status,
		TransactionID: "tx_0123456789",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestPaymentRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: payment inserted"},
		{
			name:       "error: booking already has a pending payment",
			queryErr:   &pgconn.PgError{Code: "23505", ConstraintName: "uq_payments_pending_booking"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: booking row missing",
			queryErr:   &pgconn.PgError{Code: "23503"},
			expectKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewPaymentRepository(mockQueries, mockDB)

			amount, err := payment.NewMoney(50000, "inr")
			require.NoError(t, err)
			p, err := payment.NewPayment(uuid.New(), amount, now)
			require.NoError(t, err)

			mockQueries.EXPECT().CreatePayment(ctx, mockDB, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ query.DBTX, arg query.CreatePaymentParams) (query.Payment, error) {
					assert.Equal(t, p.ID(), arg.ID)
					assert.Equal(t, p.BookingID(), arg.BookingID)
					assert.Equal(t, int64(50000), arg.AmountMinor)
					assert.Equal(t, "INR", arg.Currency)
					assert.Equal(t, "pending", arg.Status)
					assert.Equal(t, p.TransactionID(), arg.TransactionID)
					if tc.queryErr != nil {
						return query.Payment{}, tc.queryErr
					}
					return query.Payment{
						ID:            arg.ID,
						BookingID:     arg.BookingID,
						AmountMinor:   arg.AmountMinor,
						Currency:      arg.Currency,
						Status:        arg.Status,
						TransactionID: arg.TransactionID,
						CreatedAt:     arg.CreatedAt,
						UpdatedAt:     arg.CreatedAt,
					}, nil
				})

			created, err := repo.Create(ctx, p)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.ID(), created.ID())
			assert.Equal(t, payment.StatusPending, created.Status())
			assert.Equal(t, p.TransactionID(), created.TransactionID())
		})
	}
}

func TestPaymentRepository_LockByTransactionID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		row        query.Payment
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: payment locked", row: paymentRow(now, "pending")},
		{name: "error: unknown transaction", queryErr: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "error: lock timeout is transient", queryErr: &pgconn.PgError{Code: "55P03"}, expectKind: infra.KindTransient},
		{name: "error: corrupt status column", row: paymentRow(now, "bogus"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewPaymentRepository(mockQueries, mockDB)

			mockQueries.EXPECT().GetPaymentByTransactionIDForUpdate(ctx, mockDB, "tx_0123456789").Return(tc.row, tc.queryErr)

			p, err := repo.LockByTransactionID(ctx, "tx_0123456789")

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.row.ID, p.ID())
			assert.Equal(t, int64(50000), p.Amount().Minor())
			assert.Equal(t, "INR", p.Amount().Currency())
		})
	}
}

func TestPaymentRepository_FindPendingByBooking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

	t.Run("success: pending payment found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewPaymentRepository(mockQueries, mockDB)

		row := paymentRow(now, "pending")
		mockQueries.EXPECT().GetPendingPaymentByBookingID(ctx, mockDB, row.BookingID).Return(row, nil)

		p, err := repo.FindPendingByBooking(ctx, row.BookingID)
		require.NoError(t, err)
		assert.True(t, p.IsPending())
	})

	t.Run("error: no pending payment is NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewPaymentRepository(mockQueries, mockDB)

		bookingID := uuid.New()
		mockQueries.EXPECT().GetPendingPaymentByBookingID(ctx, mockDB, bookingID).Return(query.Payment{}, pgx.ErrNoRows)

		_, err := repo.FindPendingByBooking(ctx, bookingID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	now := created.Add(time.Minute)

	testCases := []struct {
		name       string
		affected   int64
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: pending payment settled", affected: 1},
		{name: "error: payment settled concurrently", affected: 0, expectKind: infra.KindConflict},
		{name: "error: deadlock is transient", queryErr: &pgconn.PgError{Code: "40P01"}, expectKind: infra.KindTransient},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockPaymentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewPaymentRepository(mockQueries, mockDB)

			amount, err := payment.NewMoney(50000, "INR")
			require.NoError(t, err)
			p := payment.ReconstructPayment(uuid.New(), uuid.New(), amount, payment.StatusPending, "tx_0123456789", created, created)
			require.NoError(t, p.Settle(payment.OutcomeSuccess, now))

			mockQueries.EXPECT().UpdatePaymentStatus(ctx, mockDB, query.UpdatePaymentStatusParams{
				ID:        p.ID(),
				Status:    "success",
				UpdatedAt: now,
			}).Return(tc.affected, tc.queryErr)

			err = repo.UpdateStatus(ctx, p)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
