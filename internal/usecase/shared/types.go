package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Endpoint       string
	Key            string
	UserID         uuid.UUID
	Status         string
	RequestHash    string
	ResponseStatus int
	ResponseBody   []byte
	ExpiresAt      time.Time
}

func (r *IdempotencyRecord) IsCompleted() bool {
	return r.Status == IdempotencyStatusCompleted
}

func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type IdempotencyClaim struct {
	Endpoint    string
	Key         string
	UserID      uuid.UUID
	RequestHash string
	Now         time.Time
	ExpiresAt   time.Time
}
