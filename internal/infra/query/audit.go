package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertAuditLog = `
INSERT INTO audit_logs (id, performed_by, action, target_id, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

type InsertAuditLogParams struct {
	ID          uuid.UUID
	PerformedBy pgtype.UUID
	Action      string
	TargetID    uuid.UUID
	Details     []byte
	CreatedAt   time.Time
}

func (q *Queries) InsertAuditLog(ctx context.Context, db DBTX, arg InsertAuditLogParams) error {
	_, err := db.Exec(ctx, insertAuditLog,
		arg.ID,
		arg.PerformedBy,
		arg.Action,
		arg.TargetID,
		arg.Details,
		arg.CreatedAt,
	)
	return err
}

const listAuditLogsByTarget = `
SELECT id, performed_by, action, target_id, details, created_at
FROM audit_logs
WHERE target_id = $1
ORDER BY created_at, id`

func (q *Queries) ListAuditLogsByTarget(ctx context.Context, db DBTX, targetID uuid.UUID) ([]AuditLog, error) {
	rows, err := db.Query(ctx, listAuditLogsByTarget, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AuditLog
	for rows.Next() {
		var a AuditLog
		if err := rows.Scan(&a.ID, &a.PerformedBy, &a.Action, &a.TargetID, &a.Details, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
