package repository

import (
	"context"

	"telemed-booking/internal/domain/audit"
	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/infra/repository/converter"
)

type AuditWriteQueries interface {
	InsertAuditLog(ctx context.Context, db query.DBTX, arg query.InsertAuditLogParams) error
}

// AuditRepository only appends; the table rejects updates and deletes.
type AuditRepository struct {
	queries AuditWriteQueries
	db      query.DBTX
}

func NewAuditRepository(queries AuditWriteQueries, db query.DBTX) *AuditRepository {
	return &AuditRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AuditRepository) Append(ctx context.Context, e audit.Entry) error {
	params, err := converter.AuditEntryToParams(e)
	if err != nil {
		return infra.WrapRepoErr("failed to encode audit entry", err, infra.KindDBFailure)
	}

	if err := r.queries.InsertAuditLog(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to append audit entry", err)
	}
	return nil
}
