// Package form collects a task name and an h/m/s timeframe from the keyboard
// and validates them before they reach the entry store.
package form

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"countdown_tui/internal/clock"
	"countdown_tui/internal/entry"
)

const (
	FieldName = iota
	FieldHours
	FieldMinutes
	FieldSeconds
	fieldCount
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
)

// Candidate is a validated form submission.
type Candidate struct {
	TaskName         string
	EstimatedSeconds int
}

func (c Candidate) Patch() entry.Patch {
	name := c.TaskName
	seconds := c.EstimatedSeconds
	return entry.Patch{TaskName: &name, EstimatedSeconds: &seconds}
}

// Form is the create form, or an edit form when built with NewEdit. Err holds
// the message from the last failed Submit.
type Form struct {
	inputs []textinput.Model
	focus  int
	Err    error
}

func New() Form {
	f := Form{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		switch i {
		case FieldName:
			in.Placeholder = "Task name"
			in.CharLimit = 120
			in.Width = 30
		case FieldHours:
			in.Placeholder = "Hours"
			in.CharLimit = 6
			in.Width = 6
		case FieldMinutes:
			in.Placeholder = "Minutes"
			in.CharLimit = 6
			in.Width = 7
		case FieldSeconds:
			in.Placeholder = "Seconds"
			in.CharLimit = 6
			in.Width = 7
		}
		f.inputs[i] = in
	}
	f.inputs[FieldName].Focus()
	return f
}

// NewEdit returns a form pre-filled from e, with the estimate split back into
// hours, minutes and seconds.
func NewEdit(e entry.Entry) Form {
	f := New()
	h, m, s := clock.Split(e.EstimatedSeconds)
	f.inputs[FieldName].SetValue(e.TaskName)
	f.inputs[FieldHours].SetValue(strconv.Itoa(h))
	f.inputs[FieldMinutes].SetValue(strconv.Itoa(m))
	f.inputs[FieldSeconds].SetValue(strconv.Itoa(s))
	f.inputs[FieldName].CursorEnd()
	return f
}

func (f *Form) Value(field int) string {
	return f.inputs[field].Value()
}

func (f *Form) SetValue(field int, v string) {
	f.inputs[field].SetValue(v)
}

func (f *Form) Focused() int {
	return f.focus
}

// Update moves focus on tab/shift+tab/up/down and hands everything else to the
// focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			return f.setFocus((f.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// Submit validates the current values. On failure the error is kept in Err
// for inline display.
func (f *Form) Submit() (Candidate, error) {
	c, err := Validate(
		f.Value(FieldName),
		f.Value(FieldHours),
		f.Value(FieldMinutes),
		f.Value(FieldSeconds),
	)
	f.Err = err
	return c, err
}

// Reset clears every field and the error, and refocuses the name.
func (f *Form) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.Err = nil
	f.setFocus(FieldName)
}

// Validate parses the timeframe leniently and checks the name before the
// total. The first failure wins.
func Validate(name, hours, minutes, seconds string) (Candidate, error) {
	total := clock.Seconds(ParseLenient(hours), ParseLenient(minutes), ParseLenient(seconds))

	trimmed, err := entry.ValidateTaskName(name)
	if err != nil {
		return Candidate{}, err
	}
	if err := entry.ValidateEstimate(total); err != nil {
		return Candidate{}, err
	}
	return Candidate{TaskName: trimmed, EstimatedSeconds: total}, nil
}

// ParseLenient reads an optional sign and the leading digits of s. Anything
// unparseable, including overflow, is 0.
func ParseLenient(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

// View renders the fields on two lines followed by the inline error, if any.
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(f.label(FieldName, "Task: "))
	sb.WriteString(f.inputs[FieldName].View())
	sb.WriteString("\n")
	sb.WriteString(f.label(FieldHours, "H: "))
	sb.WriteString(f.inputs[FieldHours].View())
	sb.WriteString(" ")
	sb.WriteString(f.label(FieldMinutes, "M: "))
	sb.WriteString(f.inputs[FieldMinutes].View())
	sb.WriteString(" ")
	sb.WriteString(f.label(FieldSeconds, "S: "))
	sb.WriteString(f.inputs[FieldSeconds].View())
	if f.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(f.Err.Error()))
	}
	return sb.String()
}

func (f *Form) label(field int, text string) string {
	if f.focus == field {
		return labelFocusedStyle.Render("→ " + text)
	}
	return labelStyle.Render("  " + text)
}
