package timelog

import (
	"time"

	"countdown_tui/internal/entry"
)

// TimeLog records one start-to-stop session of an entry. Seconds counts the
// ticks accrued during the session; TaskName is the name at stop time so the
// log outlives the entry.
type TimeLog struct {
	ID        int64
	EntryID   entry.ID
	TaskName  string
	StartedAt time.Time
	StoppedAt time.Time
	Seconds   int
}
