package domain

import "time"

// WorkEvent is an immutable start/stop fact. Seq is the insertion order and
// breaks ties between events with the same OccurredAt.
type WorkEvent struct {
	ID         string
	Seq        int64
	UserID     string
	Status     EventStatus
	OccurredAt time.Time
}

// CanFollow reports whether next may be recorded after last. A nil last
// event behaves like a STOP, so the first event of a user must be a START.
func CanFollow(last *WorkEvent, next EventStatus) bool {
	if last == nil {
		return next == StatusStart
	}
	return last.Status != next
}
