package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	// DoctorID defaults to the caller; only admins may set it to someone else.
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	StartTime time.Time  `json:"start_time" binding:"required"`
	EndTime   time.Time  `json:"end_time" binding:"required,gtfield=StartTime"`
}

type ListSlotsQuery struct {
	// Form binding cannot decode into uuid.UUID, so the handler parses it.
	DoctorID string    `form:"doctor_id" binding:"required,uuid"`
	From     time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To       time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
