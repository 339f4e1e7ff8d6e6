package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionSlotCreated       Action = "SLOT_CREATED"
	ActionBookingCreated    Action = "BOOKING_CREATED"
	ActionPaymentInitiated  Action = "PAYMENT_INITIATED"
	ActionPaymentSuccess    Action = "PAYMENT_SUCCESS"
	ActionPaymentFailed     Action = "PAYMENT_FAILED"
	ActionPaymentAfterClose Action = "PAYMENT_AFTER_CLOSE"
	ActionAutoTimeout       Action = "AUTO_TIMEOUT"
	ActionAutoTimeoutFailed Action = "AUTO_TIMEOUT_FAILED"
)

func (a Action) String() string {
	return string(a)
}

// SystemActor marks entries written by the service itself (webhook, reaper).
var SystemActor = uuid.Nil

// Entry is immutable once built; the sink only appends.
type Entry struct {
	id          uuid.UUID
	performedBy uuid.UUID
	action      Action
	targetID    uuid.UUID
	details     map[string]any
	createdAt   time.Time
}

func NewEntry(performedBy uuid.UUID, action Action, targetID uuid.UUID, details map[string]any, now time.Time) Entry {
	return Entry{
		id:          uuid.New(),
		performedBy: performedBy,
		action:      action,
		targetID:    targetID,
		details:     details,
		createdAt:   now,
	}
}

func (e Entry) ID() uuid.UUID          { return e.id }
func (e Entry) PerformedBy() uuid.UUID { return e.performedBy }
func (e Entry) Action() Action         { return e.action }
func (e Entry) TargetID() uuid.UUID    { return e.targetID }
func (e Entry) CreatedAt() time.Time   { return e.createdAt }

func (e Entry) Details() map[string]any {
	return e.details
}

func (e Entry) DetailsJSON() ([]byte, error) {
	if e.details == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.details)
}
