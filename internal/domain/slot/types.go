package slot

type Status string

const (
	StatusOpen   Status = "open"
	StatusLocked Status = "locked"
	StatusBooked Status = "booked"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusLocked, StatusBooked:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
