package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"countdown_tui/internal/config"
	"countdown_tui/internal/entry"
	"countdown_tui/internal/form"
	"countdown_tui/internal/timelog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgTick advances the running entry by one second.
type MsgTick struct{}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeLog
)

// session is the open start-to-stop interval of the running entry.
type session struct {
	entryID        entry.ID
	startedAt      time.Time
	elapsedAtStart int
}

type Model struct {
	Title         string
	SelectedIndex int
	Status        string

	store          *entry.Store
	journal        *timelog.Repository
	log            *slog.Logger
	now            func() time.Time
	recentSessions int

	mode      mode
	addForm   form.Form
	editForm  form.Form
	editingID entry.ID

	current *session

	// Recent sessions per entry, newest first.
	TimeLogs map[entry.ID][]timelog.TimeLog

	LogViewScroll int
	AllLogs       []timelog.TimeLog

	width  int
	height int
}

func NewModel(cfg config.Config, log *slog.Logger) (*Model, error) {
	journal, err := timelog.NewRepository(cfg.JournalDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	recent := cfg.RecentSessions
	if recent <= 0 {
		recent = config.Default().RecentSessions
	}

	m := &Model{
		Title:          cfg.Title,
		store:          entry.NewStore(),
		journal:        journal,
		log:            log,
		now:            time.Now,
		recentSessions: recent,
		mode:           modeList,
		addForm:        form.New(),
		TimeLogs:       make(map[entry.ID][]timelog.TimeLog),
	}
	return m, nil
}

func (m *Model) Store() *entry.Store {
	return m.store
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.tick()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if m.mode == modeLog {
		return m.allLogsView()
	}

	if m.mode == modeAdd {
		return m.addFormView()
	}

	if m.store.Len() == 0 {
		return m.emptyStateView()
	}

	return m.mainView()
}

func (m *Model) SelectedEntry() (entry.Entry, bool) {
	entries := m.store.Entries()
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(entries) {
		return entries[m.SelectedIndex], true
	}
	return entry.Entry{}, false
}

// tick re-reads the running entry on every firing so it never acts on a stale id.
func (m *Model) tick() {
	running, ok := m.store.Running()
	if !ok {
		return
	}
	if err := m.store.Tick(running.ID); err != nil {
		m.warn("tick", running.ID, err)
	}
}

// StartEntry runs id and closes the session of whichever entry ran before.
func (m *Model) StartEntry(id entry.ID) {
	if _, ok := m.store.Get(id); !ok {
		m.warn("start", id, entry.ErrNotFound)
		return
	}
	if prev, ok := m.store.Running(); ok && prev.ID != id {
		m.StopEntry(prev.ID)
	}
	if err := m.store.Start(id); err != nil {
		m.warn("start", id, err)
		return
	}
	if m.current != nil && m.current.entryID == id {
		return
	}
	e, _ := m.store.Get(id)
	m.current = &session{
		entryID:        id,
		startedAt:      m.now(),
		elapsedAtStart: e.SecondsElapsed,
	}
	m.log.Debug("entry started", slog.String("id", string(id)))
}

func (m *Model) StopEntry(id entry.ID) {
	if err := m.store.Stop(id); err != nil {
		m.warn("stop", id, err)
		return
	}
	if e, ok := m.store.Get(id); ok {
		m.closeSession(e)
	}
}

// DeleteEntry removes id, journaling its session first if it was running.
func (m *Model) DeleteEntry(id entry.ID) {
	removed, err := m.store.Delete(id)
	if err != nil {
		m.warn("delete", id, err)
		return
	}
	m.closeSession(removed)
	delete(m.TimeLogs, id)
	if m.editingID == id {
		m.cancelEdit()
	}
	if m.SelectedIndex >= m.store.Len() {
		m.SelectedIndex = m.store.Len() - 1
	}
	if m.SelectedIndex < 0 {
		m.SelectedIndex = 0
	}
}

// BeginEdit opens the inline editor on id. Unsaved edits of any other entry
// are dropped.
func (m *Model) BeginEdit(id entry.ID) tea.Cmd {
	e, ok := m.store.Get(id)
	if !ok {
		m.warn("edit", id, entry.ErrNotFound)
		return nil
	}
	m.editingID = id
	m.editForm = form.NewEdit(e)
	m.mode = modeEdit
	return textinput.Blink
}

func (m *Model) cancelEdit() {
	m.editingID = ""
	m.editForm = form.Form{}
	m.mode = modeList
}

func (m *Model) closeSession(e entry.Entry) {
	if m.current == nil || m.current.entryID != e.ID {
		return
	}
	s := m.current
	m.current = nil

	l := &timelog.TimeLog{
		EntryID:   e.ID,
		TaskName:  e.TaskName,
		StartedAt: s.startedAt,
		StoppedAt: m.now(),
		Seconds:   e.SecondsElapsed - s.elapsedAtStart,
	}
	if err := m.journal.Create(l); err != nil {
		m.log.Error("failed to journal session",
			slog.String("id", string(e.ID)),
			slog.String("error", err.Error()),
		)
		m.Status = "Session not recorded: " + err.Error()
		return
	}

	m.Status = ""
	logs := append([]timelog.TimeLog{*l}, m.TimeLogs[e.ID]...)
	if len(logs) > m.recentSessions {
		logs = logs[:m.recentSessions]
	}
	m.TimeLogs[e.ID] = logs
	m.log.Debug("session recorded",
		slog.String("id", string(e.ID)),
		slog.Int("seconds", l.Seconds),
	)
}

// warn logs store errors that normal use never produces, such as an unknown id.
func (m *Model) warn(op string, id entry.ID, err error) {
	level := slog.LevelWarn
	if errors.Is(err, entry.ErrNotRunning) {
		level = slog.LevelDebug
	}
	m.log.Log(context.Background(), level, "entry operation ignored",
		slog.String("op", op),
		slog.String("id", string(id)),
		slog.String("error", err.Error()),
	)
}

// Close stops the running entry, journals its session and releases the journal.
func (m *Model) Close() error {
	if running, ok := m.store.Running(); ok {
		m.StopEntry(running.ID)
	}
	return m.journal.Close()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A status line lasts until the next key press.
	m.Status = ""

	switch m.mode {
	case modeLog:
		return m.handleLogViewInput(msg)
	case modeAdd:
		return m.handleAddFormInput(msg)
	case modeEdit:
		return m.handleEditFormInput(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case "down", "j":
		if m.SelectedIndex < m.store.Len()-1 {
			m.SelectedIndex++
		}
	case "enter", " ":
		if e, ok := m.SelectedEntry(); ok {
			if e.Running {
				m.StopEntry(e.ID)
			} else {
				m.StartEntry(e.ID)
			}
		}
	case "n":
		m.mode = modeAdd
		return m, textinput.Blink
	case "e":
		if e, ok := m.SelectedEntry(); ok {
			return m, m.BeginEdit(e.ID)
		}
	case "d":
		if e, ok := m.SelectedEntry(); ok {
			m.DeleteEntry(e.ID)
		}
	case "l":
		allLogs, err := m.journal.All()
		if err != nil {
			m.log.Error("failed to load sessions", slog.String("error", err.Error()))
			m.Status = "Could not load sessions: " + err.Error()
			allLogs = nil
		}
		m.AllLogs = allLogs
		m.LogViewScroll = 0
		m.mode = modeLog
	}
	return m, nil
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "l":
		m.mode = modeList
		m.AllLogs = nil
	case "up", "k":
		if m.LogViewScroll > 0 {
			m.LogViewScroll--
		}
	case "down", "j":
		maxScroll := len(m.AllLogs) - 1
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.LogViewScroll < maxScroll {
			m.LogViewScroll++
		}
	}
	return m, nil
}

func (m *Model) handleAddFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeList
		return m, nil
	case "enter":
		c, err := m.addForm.Submit()
		if err != nil {
			return m, nil
		}
		if _, err := m.store.Add(c.TaskName, c.EstimatedSeconds); err != nil {
			m.addForm.Err = err
			return m, nil
		}
		m.addForm.Reset()
		m.SelectedIndex = 0
		m.mode = modeList
		return m, nil
	}
	return m, m.addForm.Update(msg)
}

func (m *Model) handleEditFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelEdit()
		return m, nil
	case "enter":
		c, err := m.editForm.Submit()
		if err != nil {
			return m, nil
		}
		if err := m.store.Edit(m.editingID, c.Patch()); err != nil {
			if errors.Is(err, entry.ErrInvalidInput) {
				m.editForm.Err = err
				return m, nil
			}
			m.warn("edit", m.editingID, err)
		}
		m.cancelEdit()
		return m, nil
	}
	return m, m.editForm.Update(msg)
}
