package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	maxSlotListRange = 31 * 24 * time.Hour
	maxSlotListSize  = 500
)

type SlotQueries interface {
	ListOpen(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*SlotView, error)
}

type SlotViewRepo interface {
	ListOpen(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit int32) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	repo  SlotViewRepo
	cache shared.Cache
	ttl   time.Duration
}

func NewSlotQueries(repo SlotViewRepo, cache shared.Cache, ttl time.Duration) SlotQueries {
	return &slotQueriesImpl{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListOpen serves listings from the cache when possible. Booking never reads this path,
// so a stale listing can only cause a 409 later, never a double booking.
func (q *slotQueriesImpl) ListOpen(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*SlotView, error) {
	if doctorID == uuid.Nil || !to.After(from) || to.Sub(from) > maxSlotListRange {
		return nil, ErrInvalidRange
	}

	key := slotListKey(doctorID, from, to)
	if cached, ok := q.fromCache(ctx, key); ok {
		return cached, nil
	}

	views, err := q.repo.ListOpen(ctx, doctorID, from, to, maxSlotListSize)
	if err != nil {
		return nil, errs.Wrap(err, "list open slots")
	}
	if views == nil {
		views = []*SlotView{}
	}

	q.toCache(ctx, key, views)
	return views, nil
}

func (q *slotQueriesImpl) fromCache(ctx context.Context, key string) ([]*SlotView, bool) {
	raw, err := q.cache.Get(ctx, key)
	if err != nil {
		if !errs.Is(err, shared.ErrCacheMiss) {
			slog.WarnContext(ctx, "slot cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	var views []*SlotView
	if err := json.Unmarshal(raw, &views); err != nil {
		slog.WarnContext(ctx, "slot cache entry unreadable", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return views, true
}

func (q *slotQueriesImpl) toCache(ctx context.Context, key string, views []*SlotView) {
	raw, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := q.cache.Set(ctx, key, raw, q.ttl); err != nil {
		slog.WarnContext(ctx, "slot cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func slotListKey(doctorID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("slots:%s:%d:%d", doctorID, from.Unix(), to.Unix())
}
