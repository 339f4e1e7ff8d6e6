//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestSlot(t *testing.T, db DBLike, doctorID uuid.UUID, start time.Time) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO slots (id, doctor_id, start_time, end_time) VALUES ($1, $2, $3, $4)",
		slotID, doctorID, start, start.Add(30*time.Minute))
	require.NoError(t, err)

	return slotID
}

// BackdateBooking moves created_at into the past so the reaper treats the booking as stale.
func BackdateBooking(t *testing.T, db DBLike, bookingID uuid.UUID, age time.Duration) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE bookings SET created_at = now() - make_interval(secs => $2) WHERE id = $1",
		bookingID, age.Seconds())
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

func SlotBooked(t *testing.T, db DBLike, slotID uuid.UUID) bool {
	t.Helper()

	var booked bool
	err := db.QueryRow(context.Background(), "SELECT is_booked FROM slots WHERE id = $1", slotID).Scan(&booked)
	require.NoError(t, err)
	return booked
}

func CountAudit(t *testing.T, db DBLike, targetID uuid.UUID, action string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM audit_logs WHERE target_id = $1 AND action = $2", targetID, action).Scan(&n)
	require.NoError(t, err)
	return n
}

func InsertAudit(t *testing.T, db DBLike, targetID uuid.UUID, action string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO audit_logs (id, action, target_id) VALUES ($1, $2, $3)",
		uuid.New(), action, targetID)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
