package request

import "github.com/google/uuid"

type BookSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}
