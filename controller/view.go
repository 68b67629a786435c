package controller

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bottomHeight = 1
const minLogContext = 6

// layout recomputes every pane's dimensions from the current terminal size,
// per spec.md §4.8: a vertical split into main area + one-line bottom area;
// the main area splits horizontally into Students(75%)/Status(25%) on the
// left and Log(50%)/Diff(50%) on the right.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	mainHeight := m.height - bottomHeight
	if mainHeight < 1 {
		mainHeight = 1
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	studentsHeight := mainHeight * 3 / 4
	statusHeight := mainHeight - studentsHeight
	if studentsHeight < 1 {
		studentsHeight = 1
	}

	logHeight := mainHeight / 2
	diffHeight := mainHeight - logHeight

	m.table.SetWidth(leftWidth - 2)
	m.table.SetHeight(studentsHeight - 2)
	if m.table.Cursor() != m.selected && m.selected >= 0 {
		m.table.SetCursor(m.selected)
	}

	m.logVP.Width = rightWidth - 2
	m.logVP.Height = logHeight - 2
	if m.logVP.Height < minLogContext {
		m.logVP.Height = minLogContext
	}

	m.diffVP.Width = rightWidth - 2
	m.diffVP.Height = diffHeight - 2
	if m.diffVP.Height < minLogContext {
		m.diffVP.Height = minLogContext
	}
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing...\n"
	}

	if m.quitting {
		return "Bye.\n"
	}

	m.table.SetRows(studentRows(m.roster))
	if m.selected >= 0 {
		m.table.SetCursor(m.selected)
	}

	studentsPane := m.renderPane("Students", m.focus == PaneStudents, m.table.View())
	statusPane := m.renderPane("Status", m.focus == PaneStatus, m.renderStatus())
	logPane := m.renderPane("Log", m.focus == PaneLog, m.logVP.View())
	diffPane := m.renderPane("Diff", m.focus == PaneDiff, m.diffVP.View())

	left := lipgloss.JoinVertical(lipgloss.Left, studentsPane, statusPane)
	right := lipgloss.JoinVertical(lipgloss.Left, logPane, diffPane)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	bottom := m.renderBottomLine()

	return lipgloss.JoinVertical(lipgloss.Left, main, bottom)
}

func (m *Model) renderPane(title string, focused bool, body string) string {
	border := paneBorder(m.sty, focused)
	heading := paneTitle(m.sty, title, focused)

	return border.Render(heading + "\n" + body)
}

func (m *Model) renderStatus() string {
	return m.sty.status.Render(strings.Join(m.statusLog, "\n"))
}

func (m *Model) renderBottomLine() string {
	prefix := "Comment: "
	if m.mode != ModeComment {
		prefix = ""
	}

	return m.sty.bottom.Render(prefix + m.commentBuffer)
}
