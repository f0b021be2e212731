package domain

// Status is the lifecycle status of a request. The numeric values are part of
// the wire and storage format and must not be reordered.
type Status int

// List of request lifecycle statuses
const (
	StatusUnscheduled Status = 0
	StatusPending     Status = 1
	StatusInProgress  Status = 2
	StatusCompleted   Status = 3
	StatusCancelled   Status = 4
)

// Valid checks if the Status is a known lifecycle status.
func (s Status) Valid() bool {
	return s >= StatusUnscheduled && s <= StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusUnscheduled:
		return "unscheduled"
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CanTransition reports whether the engine may move a request from one status
// to another. Only pending→in_progress and in_progress→completed are
// engine-driven; cancellation happens out of band.
func CanTransition(from, to Status) bool {
	switch {
	case from == StatusPending && to == StatusInProgress:
		return true
	case from == StatusInProgress && to == StatusCompleted:
		return true
	default:
		return false
	}
}
