// Package entry holds the in-memory collection of task entries and the rules
// that govern their timers.
package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store keeps entries newest first. At most one entry runs at a time; the
// running id is tracked on the store so exclusivity never needs a scan.
//
// Store is not safe for concurrent use. Callers serialize access through the
// UI event loop.
type Store struct {
	entries []*Entry
	running ID
	now     func() time.Time
	newID   func() ID
}

type Option func(*Store)

// WithClock overrides the source of CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides entry id generation.
func WithIDs(newID func() ID) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: func() ID { return ID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateTaskName trims name and rejects it if nothing is left.
func ValidateTaskName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errTaskNameRequired
	}
	return name, nil
}

func ValidateEstimate(seconds int) error {
	if seconds <= 0 {
		return errTimeframeZero
	}
	return nil
}

// Add prepends a stopped entry with no elapsed time.
func (s *Store) Add(taskName string, estimatedSeconds int) (ID, error) {
	name, err := ValidateTaskName(taskName)
	if err != nil {
		return "", err
	}
	if err := ValidateEstimate(estimatedSeconds); err != nil {
		return "", err
	}

	e := &Entry{
		ID:               s.newID(),
		TaskName:         name,
		EstimatedSeconds: estimatedSeconds,
		CreatedAt:        s.now(),
	}
	s.entries = append([]*Entry{e}, s.entries...)
	return e.ID, nil
}

// Start makes id the running entry and stops whichever entry ran before.
func (s *Store) Start(id ID) error {
	e := s.find(id)
	if e == nil {
		return ErrNotFound
	}
	if s.running == id {
		return nil
	}
	if prev := s.find(s.running); prev != nil {
		prev.Running = false
	}
	e.Running = true
	s.running = id
	return nil
}

func (s *Store) Stop(id ID) error {
	e := s.find(id)
	if e == nil {
		return ErrNotFound
	}
	e.Running = false
	if s.running == id {
		s.running = ""
	}
	return nil
}

// Tick accrues one second on id. Ticks for anything but the running entry are
// ignored and reported as ErrNotRunning.
func (s *Store) Tick(id ID) error {
	e := s.find(id)
	if e == nil {
		return ErrNotFound
	}
	if s.running != id || !e.Running {
		return ErrNotRunning
	}
	e.SecondsElapsed++
	return nil
}

// Edit replaces the fields set in p. Nothing changes if any field is invalid.
func (s *Store) Edit(id ID, p Patch) error {
	e := s.find(id)
	if e == nil {
		return ErrNotFound
	}

	name := e.TaskName
	if p.TaskName != nil {
		n, err := ValidateTaskName(*p.TaskName)
		if err != nil {
			return err
		}
		name = n
	}
	estimate := e.EstimatedSeconds
	if p.EstimatedSeconds != nil {
		if err := ValidateEstimate(*p.EstimatedSeconds); err != nil {
			return err
		}
		estimate = *p.EstimatedSeconds
	}

	e.TaskName = name
	e.EstimatedSeconds = estimate
	return nil
}

// Delete removes id and returns the entry as it was just before removal.
func (s *Store) Delete(id ID) (Entry, error) {
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		if s.running == id {
			s.running = ""
		}
		return *e, nil
	}
	return Entry{}, ErrNotFound
}

func (s *Store) Totals() (estimated, elapsed int) {
	for _, e := range s.entries {
		estimated += e.EstimatedSeconds
		elapsed += e.SecondsElapsed
	}
	return estimated, elapsed
}

// Entries returns a snapshot, newest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = *e
	}
	return out
}

func (s *Store) Get(id ID) (Entry, bool) {
	e := s.find(id)
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Running returns the entry currently accruing time, if any.
func (s *Store) Running() (Entry, bool) {
	if s.running == "" {
		return Entry{}, false
	}
	return s.Get(s.running)
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) find(id ID) *Entry {
	if id == "" {
		return nil
	}
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
