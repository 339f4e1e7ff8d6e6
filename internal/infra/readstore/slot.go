package readstore

import (
	"context"
	"time"

	"telemed-booking/internal/infra"
	"telemed-booking/internal/infra/query"
	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotViewQueries interface {
	ListOpenSlots(ctx context.Context, db query.DBTX, arg query.ListOpenSlotsParams) ([]query.Slot, error)
}

type SlotReadStore struct {
	queries SlotViewQueries
	db      query.DBTX
}

func NewSlotReadStore(queries SlotViewQueries, db query.DBTX) *SlotReadStore {
	return &SlotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SlotReadStore) ListOpen(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit int32) ([]*queries.SlotView, error) {
	rows, err := r.queries.ListOpenSlots(ctx, r.db, query.ListOpenSlotsParams{
		DoctorID: doctorID,
		From:     from,
		To:       to,
		Limit:    limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open slots", err)
	}

	result := make([]*queries.SlotView, len(rows))
	for i, row := range rows {
		result[i] = &queries.SlotView{
			ID:        row.ID,
			DoctorID:  row.DoctorID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Status:    row.Status,
		}
	}
	return result, nil
}
