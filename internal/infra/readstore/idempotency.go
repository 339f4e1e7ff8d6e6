package readstore

import (
	"context"

	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/pkg/pgconv"
	"telemed-booking/internal/usecase/shared"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db query.DBTX, endpoint, key string) (query.IdempotencyKey, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
	db      query.DBTX
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries, db query.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
		db:      db,
	}
}

// Get returns the ledger entry as stored; callers decide whether it has expired.
func (r *IdempotencyReadStore) Get(ctx context.Context, endpoint, key string) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, endpoint, key)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Endpoint:     row.Endpoint,
		Key:          row.Key,
		UserID:       row.UserID,
		Status:       row.Status,
		RequestHash:  row.RequestHash,
		ResponseBody: row.ResponseBody,
		ExpiresAt:    row.ExpiresAt,
	}
	if status := pgconv.Int32PtrFromPgtype(row.ResponseStatus); status != nil {
		record.ResponseStatus = int(*status)
	}
	return record, nil
}
