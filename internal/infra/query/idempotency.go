package query

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// claimIdempotencyKey inserts a processing placeholder. An expired row is taken over;
// a live row (or one being inserted by a concurrent transaction, once it commits) yields no row.
const claimIdempotencyKey = `
INSERT INTO idempotency_keys (endpoint, key, user_id, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, $4, 'processing', $5, $6)
ON CONFLICT (endpoint, key) DO UPDATE
SET user_id = EXCLUDED.user_id,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    response_status = NULL,
    response_body = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = EXCLUDED.created_at
WHERE idempotency_keys.expires_at < EXCLUDED.created_at
RETURNING key`

type ClaimIdempotencyKeyParams struct {
	Endpoint    string
	Key         string
	UserID      uuid.UUID
	RequestHash string
	ExpiresAt   time.Time
	Now         time.Time
}

func (q *Queries) ClaimIdempotencyKey(ctx context.Context, db DBTX, arg ClaimIdempotencyKeyParams) (string, error) {
	var key string
	err := db.QueryRow(ctx, claimIdempotencyKey,
		arg.Endpoint,
		arg.Key,
		arg.UserID,
		arg.RequestHash,
		arg.ExpiresAt,
		arg.Now,
	).Scan(&key)
	return key, err
}

const getIdempotencyKey = `
SELECT endpoint, key, user_id, request_hash, status, response_status, response_body, expires_at, created_at
FROM idempotency_keys
WHERE endpoint = $1 AND key = $2`

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, endpoint, key string) (IdempotencyKey, error) {
	var k IdempotencyKey
	err := db.QueryRow(ctx, getIdempotencyKey, endpoint, key).Scan(
		&k.Endpoint,
		&k.Key,
		&k.UserID,
		&k.RequestHash,
		&k.Status,
		&k.ResponseStatus,
		&k.ResponseBody,
		&k.ExpiresAt,
		&k.CreatedAt,
	)
	return k, err
}

const completeIdempotencyKey = `
UPDATE idempotency_keys
SET status = 'completed', response_status = $3, response_body = $4
WHERE endpoint = $1 AND key = $2 AND status = 'processing'`

type CompleteIdempotencyKeyParams struct {
	Endpoint       string
	Key            string
	ResponseStatus int32
	ResponseBody   []byte
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, completeIdempotencyKey, arg.Endpoint, arg.Key, arg.ResponseStatus, arg.ResponseBody)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteExpiredIdempotencyKeys = `DELETE FROM idempotency_keys WHERE expires_at < $1`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX, now time.Time) (int64, error) {
	tag, err := db.Exec(ctx, deleteExpiredIdempotencyKeys, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
