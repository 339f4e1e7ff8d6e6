//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository"
	"telemed-booking/internal/usecase/shared"
	repositorymock "telemed-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyRepository_Claim(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	claim := shared.IdempotencyClaim{
		Endpoint:    "POST /bookings",
		Key:         "k1",
		UserID:      uuid.New(),
		RequestHash: "abc",
		Now:         now,
		ExpiresAt:   now.Add(24 * time.Hour),
	}

	testCases := []struct {
		name        string
		returnKey   string
		queryErr    error
		wantClaimed bool
		expectKind  infra.RepositoryErrorKind
	}{
		{name: "success: fresh key claimed", returnKey: "k1", wantClaimed: true},
		{name: "success: live key held elsewhere", queryErr: pgx.ErrNoRows, wantClaimed: false},
		{name: "error: database failure", queryErr: errors.New("boom"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

			mockQueries.EXPECT().ClaimIdempotencyKey(ctx, mockDB, query.ClaimIdempotencyKeyParams{
				Endpoint:    claim.Endpoint,
				Key:         claim.Key,
				UserID:      claim.UserID,
				RequestHash: claim.RequestHash,
				ExpiresAt:   claim.ExpiresAt,
				Now:         claim.Now,
			}).Return(tc.returnKey, tc.queryErr)

			claimed, err := repo.Claim(ctx, claim)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantClaimed, claimed)
		})
	}
}

func TestIdempotencyRepository_Complete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewIdempotencyRepository(mockQueries, mockDB)
	body := []byte(`{"id":"b1"}`)

	mockQueries.EXPECT().CompleteIdempotencyKey(ctx, mockDB, query.CompleteIdempotencyKeyParams{
		Endpoint:       "POST /bookings",
		Key:            "k1",
		ResponseStatus: 201,
		ResponseBody:   body,
	}).Return(int64(1), nil)
	require.NoError(t, repo.Complete(ctx, "POST /bookings", "k1", 201, body))

	mockQueries.EXPECT().CompleteIdempotencyKey(ctx, mockDB, gomock.Any()).Return(int64(0), nil)
	err := repo.Complete(ctx, "POST /bookings", "k1", 201, body)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
}
