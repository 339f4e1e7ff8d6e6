//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository"
	repositorymock "telemed-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditRepository_Append(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	targetID := uuid.New()

	t.Run("system entries store a NULL actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockAuditWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAuditRepository(mockQueries, mockDB)

		entry := audit.NewEntry(audit.SystemActor, audit.ActionAutoTimeout, targetID, map[string]any{"reason": "stale"}, now)

		mockQueries.EXPECT().InsertAuditLog(ctx, mockDB, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ query.DBTX, arg query.InsertAuditLogParams) error {
				assert.False(t, arg.PerformedBy.Valid)
				assert.Equal(t, "AUTO_TIMEOUT", arg.Action)
				assert.Equal(t, targetID, arg.TargetID)
				assert.JSONEq(t, `{"reason":"stale"}`, string(arg.Details))
				return nil
			})

		require.NoError(t, repo.Append(ctx, entry))
	})

	t.Run("append-only trigger violation surfaces as db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockAuditWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewAuditRepository(mockQueries, mockDB)

		entry := audit.NewEntry(uuid.New(), audit.ActionBookingCreated, targetID, nil, now)
		mockQueries.EXPECT().InsertAuditLog(ctx, mockDB, gomock.Any()).Return(&pgconn.PgError{Code: "P0001"})

		err := repo.Append(ctx, entry)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
