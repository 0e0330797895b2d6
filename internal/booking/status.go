package booking

import "fmt"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a wire status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// allowedTransitions is the directed graph of admin-driven transitions.
// completed and cancelled are terminal. Nothing is time-triggered: stale
// pending bookings stay pending until an admin acts on them.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is an allowed transition.
// Identity transitions are allowed so repeated admin clicks are no-ops.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether a status counts against vehicle availability.
// Cancelled bookings are soft-deleted reservations and free their dates.
func (s Status) Active() bool {
	return s != StatusCancelled
}
