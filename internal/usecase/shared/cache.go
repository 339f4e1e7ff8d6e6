package shared

import (
	"context"
	"time"

	"telemed-booking/internal/pkg/errs"
)

var ErrCacheMiss = errs.New("cache miss")

// Cache is best-effort storage. Callers treat every error as a miss and never
// derive slot occupancy from it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// SlotListPattern matches every cached open-slot listing of a doctor.
func SlotListPattern(doctorID string) string {
	return "slots:" + doctorID + ":*"
}
