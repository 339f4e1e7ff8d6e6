// Package query holds the SQL statements of the service and thin pgx wrappers around them.
// Every method takes the DBTX to run on, so the same Queries value serves the pool and open transactions.
package query

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

const setLockTimeout = `SELECT set_config('lock_timeout', $1, true)`

// SetLocalLockTimeout bounds how long row locks are awaited for the rest of the transaction.
func (q *Queries) SetLocalLockTimeout(ctx context.Context, db DBTX, timeout string) error {
	_, err := db.Exec(ctx, setLockTimeout, timeout)
	return err
}

const ping = `SELECT 1`

func (q *Queries) Ping(ctx context.Context, db DBTX) error {
	var one int
	return db.QueryRow(ctx, ping).Scan(&one)
}
