package internal

import (
	"fmt"
	"strings"

	"countdown_tui/internal/clock"
	"countdown_tui/internal/entry"
	"countdown_tui/internal/timelog"

	"github.com/charmbracelet/lipgloss"
)

const (
	screenWidth  = 90
	screenHeight = 24
	listWidth    = 52
	detailWidth  = 34
	logPageSize  = 15
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	entryItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	entryItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	overtimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	editBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("170"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

// remainingView is the countdown for e, styled red once it goes into overtime.
func remainingView(e entry.Entry) string {
	text := clock.Format(e.Remaining())
	switch {
	case e.Overtime():
		return overtimeStyle.Render(text)
	case e.Running:
		return timerRunningStyle.Render(text)
	default:
		return timerDisplayStyle.Render(text)
	}
}

func (m *Model) emptyStateView() string {
	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render(m.Title)+"\n\n"+
			inactiveStyle.Render("No tasks yet. Press 'n' to add one.")+"\n\n"+
			m.totalsView(),
	)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(screenWidth).Render(m.Title))
	sb.WriteString("\n\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.entryListView(),
		"  ",
		m.entryDetailView(),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n\n")
	sb.WriteString(m.totalsView())
	sb.WriteString("\n")
	if m.Status != "" {
		sb.WriteString(statusStyle.Render(m.Status))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if m.mode == modeEdit {
		sb.WriteString(helpStyle.Render("Tab: Next field | Enter: Save | Esc: Cancel"))
	} else {
		sb.WriteString(helpStyle.Render("Navigate: Up/Down | Start/Stop: Enter | New: n | Edit: e | Delete: d | Sessions: l | Quit: q"))
	}

	return sb.String()
}

func (m *Model) totalsView() string {
	estimated, elapsed := m.store.Totals()
	return totalStyle.Render("Total Estimated Time: "+clock.Format(estimated)) + "\n" +
		totalStyle.Render("Total Actual Time Worked: "+clock.Format(elapsed))
}

func (m *Model) entryListView() string {
	var sb strings.Builder

	sb.WriteString("Tasks\n\n")

	for i, e := range m.store.Entries() {
		if m.mode == modeEdit && e.ID == m.editingID {
			sb.WriteString(editBoxStyle.Render(m.editForm.View()))
			sb.WriteString("\n")
			continue
		}

		running := ""
		if e.Running {
			running = " ●"
		}
		line := fmt.Sprintf("%s  %s%s", remainingView(e), e.TaskName, running)

		if i == m.SelectedIndex {
			sb.WriteString(entryItemSelectedStyle.Render(line))
		} else {
			sb.WriteString(entryItemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	return boxStyle.Width(listWidth).Render(sb.String())
}

func (m *Model) entryDetailView() string {
	e, ok := m.SelectedEntry()
	if !ok {
		return boxStyle.Width(detailWidth).Render("Select a task")
	}

	status := "Stopped"
	statusStyle := inactiveStyle
	if e.Running {
		status = "Running"
		statusStyle = runningStyle
	}
	if e.Overtime() {
		status += " (overtime)"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Task: %s\n\n", e.TaskName))
	sb.WriteString(remainingView(e))
	sb.WriteString(fmt.Sprintf("\n\n%s\n", statusStyle.Render(status)))
	sb.WriteString(fmt.Sprintf("Estimate: %s\n", clock.Format(e.EstimatedSeconds)))
	sb.WriteString(fmt.Sprintf("Elapsed:  %s\n", clock.Format(e.SecondsElapsed)))
	sb.WriteString(logTimeStyle.Render("Created " + e.CreatedStamp()))
	sb.WriteString("\n")

	logs := m.TimeLogs[e.ID]
	if len(logs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent Sessions"))
		sb.WriteString("\n")
		for _, l := range logs {
			sb.WriteString(formatLogEntry(l, false))
			sb.WriteString("\n")
		}
	}

	return boxStyle.Width(detailWidth).Render(sb.String())
}

func (m *Model) addFormView() string {
	help := helpStyle.Render("Tab: Next field | Enter: Add | Esc: Cancel")
	body := titleStyle.Render("Add Task") + "\n\n" + m.addForm.View() + "\n\n" + help

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(60).Render(body),
	)
}

func (m *Model) allLogsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(screenWidth).Render("Sessions"))
	sb.WriteString("\n\n")

	if len(m.AllLogs) == 0 {
		sb.WriteString(inactiveStyle.Render("No sessions recorded yet."))
	} else {
		end := min(m.LogViewScroll+logPageSize, len(m.AllLogs))
		for _, l := range m.AllLogs[m.LogViewScroll:end] {
			sb.WriteString(formatLogEntry(l, true))
			sb.WriteString("\n")
		}
		sb.WriteString(helpStyle.Render(fmt.Sprintf("%d-%d of %d", m.LogViewScroll+1, end, len(m.AllLogs))))
	}

	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Back: Esc"))
	return sb.String()
}

func formatLogEntry(l timelog.TimeLog, withTask bool) string {
	timeStr := logTimeStyle.Render(l.StoppedAt.Local().Format("Jan 02 15:04"))
	line := fmt.Sprintf("  %s  %s", timeStr, clock.Format(l.Seconds))
	if withTask {
		line += "  " + l.TaskName
	}
	return line
}
