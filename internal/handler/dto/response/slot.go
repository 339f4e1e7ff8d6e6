package response

import (
	"time"

	"telemed-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	var resp SlotResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromSlotViews(views []*queries.SlotView) ([]SlotResponse, error) {
	resp := make([]SlotResponse, 0, len(views))
	if err := copier.Copy(&resp, &views); err != nil {
		return nil, err
	}
	return resp, nil
}
