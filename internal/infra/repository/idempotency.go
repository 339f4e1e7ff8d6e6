package repository

import (
	"context"
	"time"

	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/pkg/pgconv"
	"telemed-booking/internal/usecase/shared"
)

type IdempotencyWriteQueries interface {
	ClaimIdempotencyKey(ctx context.Context, db query.DBTX, arg query.ClaimIdempotencyKeyParams) (string, error)
	CompleteIdempotencyKey(ctx context.Context, db query.DBTX, arg query.CompleteIdempotencyKeyParams) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db query.DBTX, now time.Time) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      query.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db query.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) Claim(ctx context.Context, claim shared.IdempotencyClaim) (bool, error) {
	params := query.ClaimIdempotencyKeyParams{
		Endpoint:    claim.Endpoint,
		Key:         claim.Key,
		UserID:      claim.UserID,
		RequestHash: claim.RequestHash,
		ExpiresAt:   claim.ExpiresAt,
		Now:         claim.Now,
	}

	_, err := r.queries.ClaimIdempotencyKey(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return true, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, endpoint, key string, status int, body []byte) error {
	params := query.CompleteIdempotencyKeyParams{
		Endpoint:       endpoint,
		Key:            key,
		ResponseStatus: int32(status), // #nosec G115 -- HTTP status codes fit in int32
		ResponseBody:   body,
	}

	affected, err := r.queries.CompleteIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("idempotency key not in processing state", nil, infra.KindConflict)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
