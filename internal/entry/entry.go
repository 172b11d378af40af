package entry

import "time"

// ID identifies an entry for the lifetime of a session.
type ID string

// Entry is one task with an estimated duration and the time spent on it so far.
type Entry struct {
	ID               ID
	TaskName         string
	EstimatedSeconds int
	SecondsElapsed   int
	Running          bool
	CreatedAt        time.Time
}

// Remaining is negative once the entry runs past its estimate.
func (e Entry) Remaining() int {
	return e.EstimatedSeconds - e.SecondsElapsed
}

func (e Entry) Overtime() bool {
	return e.Remaining() < 0
}

// CreatedStamp renders CreatedAt as RFC 3339.
func (e Entry) CreatedStamp() string {
	return e.CreatedAt.Format(time.RFC3339)
}

// Patch carries the fields an edit replaces. Nil fields are left alone.
type Patch struct {
	TaskName         *string
	EstimatedSeconds *int
}
