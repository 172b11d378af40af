package entry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown_tui/internal/clock"
)

// newTestStore returns a store with sequential ids and a fixed clock.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return NewStore(
		WithIDs(func() ID {
			n++
			return ID(fmt.Sprintf("e%d", n))
		}),
		WithClock(func() time.Time { return at }),
	)
}

func runningCount(s *Store) int {
	n := 0
	for _, e := range s.Entries() {
		if e.Running {
			n++
		}
	}
	return n
}

func TestAdd(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	id, err := s.Add("  Write report ", clock.Seconds(0, 30, 0))
	require.NoError(t, err)

	e, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Write report", e.TaskName)
	assert.Equal(t, 1800, e.EstimatedSeconds)
	assert.Equal(t, 0, e.SecondsElapsed)
	assert.False(t, e.Running)
	assert.Equal(t, "2024-03-01T09:00:00Z", e.CreatedStamp())
	assert.Equal(t, "00:30:00", clock.Format(e.Remaining()))
}

func TestAddPrependsNewest(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	a, _ := s.Add("a", 10)
	b, _ := s.Add("b", 10)
	c, _ := s.Add("c", 10)

	entries := s.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []ID{c, b, a}, []ID{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestAddRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		task     string
		estimate int
		field    string
	}{
		{"empty name", "", 600, FieldTaskName},
		{"blank name", "   ", 600, FieldTaskName},
		{"zero estimate", "X", 0, FieldTimeframe},
		{"negative estimate", "X", -5, FieldTimeframe},
		{"name checked first", "", 0, FieldTaskName},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStore(t)

			_, err := s.Add(tt.task, tt.estimate)
			require.ErrorIs(t, err, ErrInvalidInput)

			var inv *InvalidInputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tt.field, inv.Field)
			assert.NotEmpty(t, inv.Reason)
			assert.Zero(t, s.Len())
		})
	}
}

func TestStartIsExclusive(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a, _ := s.Add("a", 60)
	b, _ := s.Add("b", 60)
	c, _ := s.Add("c", 60)

	require.NoError(t, s.Start(a))
	require.NoError(t, s.Start(b))

	for _, e := range s.Entries() {
		assert.Equal(t, e.ID == b, e.Running, "entry %s", e.ID)
	}
	r, ok := s.Running()
	require.True(t, ok)
	assert.Equal(t, b, r.ID)

	// idempotent
	require.NoError(t, s.Start(b))
	assert.Equal(t, 1, runningCount(s))

	require.NoError(t, s.Start(c))
	r, _ = s.Running()
	assert.Equal(t, c, r.ID)
	assert.Equal(t, 1, runningCount(s))
}

func TestStop(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a, _ := s.Add("a", 60)
	b, _ := s.Add("b", 60)

	require.NoError(t, s.Start(a))
	require.NoError(t, s.Stop(b))
	_, ok := s.Running()
	assert.True(t, ok, "stopping another entry leaves the running one alone")

	require.NoError(t, s.Stop(a))
	require.NoError(t, s.Stop(a))
	_, ok = s.Running()
	assert.False(t, ok)
	assert.Zero(t, runningCount(s))
}

func TestUnknownID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	_, _ = s.Add("a", 60)

	assert.ErrorIs(t, s.Start("nope"), ErrNotFound)
	assert.ErrorIs(t, s.Stop("nope"), ErrNotFound)
	assert.ErrorIs(t, s.Tick("nope"), ErrNotFound)
	assert.ErrorIs(t, s.Edit("nope", Patch{}), ErrNotFound)
	_, err := s.Delete("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestTickOnlyAdvancesRunningEntry(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a, _ := s.Add("a", 60)
	b, _ := s.Add("b", 60)

	require.NoError(t, s.Start(a))
	require.NoError(t, s.Tick(a))

	ea, _ := s.Get(a)
	eb, _ := s.Get(b)
	assert.Equal(t, 1, ea.SecondsElapsed)
	assert.Equal(t, 0, eb.SecondsElapsed)

	assert.ErrorIs(t, s.Tick(b), ErrNotRunning)
	eb, _ = s.Get(b)
	assert.Equal(t, 0, eb.SecondsElapsed)

	require.NoError(t, s.Stop(a))
	assert.ErrorIs(t, s.Tick(a), ErrNotRunning)
	ea, _ = s.Get(a)
	assert.Equal(t, 1, ea.SecondsElapsed, "elapsed is frozen while stopped")
}

func TestOvertime(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	id, err := s.Add("Write report", 1800)
	require.NoError(t, err)
	require.NoError(t, s.Start(id))

	for i := 0; i < 1801; i++ {
		require.NoError(t, s.Tick(id))
	}

	e, _ := s.Get(id)
	assert.Equal(t, 1801, e.SecondsElapsed)
	assert.Equal(t, -1, e.Remaining())
	assert.True(t, e.Overtime())
	assert.Equal(t, "-00:00:01", clock.Format(e.Remaining()))
}

func TestEdit(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	id, _ := s.Add("Write report", 1800)
	require.NoError(t, s.Start(id))
	for i := 0; i < 600; i++ {
		require.NoError(t, s.Tick(id))
	}

	estimate := 3600
	require.NoError(t, s.Edit(id, Patch{EstimatedSeconds: &estimate}))

	e, _ := s.Get(id)
	assert.Equal(t, "Write report", e.TaskName)
	assert.Equal(t, 3600, e.EstimatedSeconds)
	assert.Equal(t, 600, e.SecondsElapsed)
	assert.True(t, e.Running)
	assert.Equal(t, 3000, e.Remaining())

	name := " Review "
	require.NoError(t, s.Edit(id, Patch{TaskName: &name}))
	e, _ = s.Get(id)
	assert.Equal(t, "Review", e.TaskName)
	assert.Equal(t, 3600, e.EstimatedSeconds)
}

func TestEditRejectsInvalidPatch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	id, _ := s.Add("a", 60)

	blank := " "
	zero := 0
	ok := 120
	assert.ErrorIs(t, s.Edit(id, Patch{TaskName: &blank, EstimatedSeconds: &ok}), ErrInvalidInput)
	assert.ErrorIs(t, s.Edit(id, Patch{EstimatedSeconds: &zero}), ErrInvalidInput)

	e, _ := s.Get(id)
	assert.Equal(t, "a", e.TaskName)
	assert.Equal(t, 60, e.EstimatedSeconds)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	id, _ := s.Add("only", 1800)
	require.NoError(t, s.Start(id))
	require.NoError(t, s.Tick(id))

	removed, err := s.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, id, removed.ID)
	assert.True(t, removed.Running)

	est, el := s.Totals()
	assert.Equal(t, "00:00:00", clock.Format(est))
	assert.Equal(t, "00:00:00", clock.Format(el))
	_, running := s.Running()
	assert.False(t, running)
}

func TestTotals(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a, _ := s.Add("a", 100)
	_, _ = s.Add("b", 250)
	require.NoError(t, s.Start(a))
	for i := 0; i < 7; i++ {
		require.NoError(t, s.Tick(a))
	}

	est, el := s.Totals()
	assert.Equal(t, 350, est)
	assert.Equal(t, 7, el)
}

func TestAtMostOneRunningUnderAnySequence(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var ids []ID
	for i := 0; i < 5; i++ {
		id, err := s.Add(fmt.Sprintf("t%d", i), 60)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Deterministic pseudo-random walk over start/stop/delete/add.
	seed := uint32(7)
	next := func(n int) int {
		seed = seed*1103515245 + 12345
		return int(seed>>16) % n
	}
	for step := 0; step < 500; step++ {
		if len(ids) == 0 {
			id, _ := s.Add("refill", 60)
			ids = append(ids, id)
		}
		id := ids[next(len(ids))]
		switch next(4) {
		case 0:
			_ = s.Start(id)
		case 1:
			_ = s.Stop(id)
		case 2:
			if _, err := s.Delete(id); err == nil {
				for i := range ids {
					if ids[i] == id {
						ids = append(ids[:i], ids[i+1:]...)
						break
					}
				}
			}
		case 3:
			nid, _ := s.Add("new", 30)
			ids = append(ids, nid)
		}
		require.LessOrEqual(t, runningCount(s), 1, "step %d", step)
	}
}
