package controller

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jiegec/classroom-helper/bus"
)

// Pane identifies one quadrant of the 2x2 focus grid described in spec.md
// §4.7.1 / §4.8.
type Pane int

const (
	PaneStudents Pane = iota
	PaneStatus
	PaneLog
	PaneDiff
)

// Mode distinguishes Normal key dispatch from the Comment-editing buffer.
type Mode int

const (
	ModeNormal Mode = iota
	ModeComment
)

// gradeAxis names which grade field a commit or repeat targets.
type gradeAxis int

const (
	axisBlackbox gradeAxis = iota
	axisWhitebox
)

// lastGrade remembers the most recently committed (value, axis) pair so `r`
// can repeat it verbatim, per spec.md §4.7.2.
type lastGrade struct {
	set   bool
	value *float64
	axis  gradeAxis
}

// tickMsg drives the non-blocking bus drain described in spec.md §4.7.4.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// drain pulls every pending message off b without blocking, applying each
// to the model in order, matching spec.md §5's "processes every message
// available at each tick" guarantee. This is the one place this repo's
// concurrency shape deliberately diverges from the teacher's one-message-
// per-tea.Cmd re-arm pattern (output.waitForOutput/waitForError): spec.md
// requires the whole backlog absorbed in a single UI frame.
func (m *Model) drain() {
	for {
		select {
		case msg, ok := <-m.bus.Messages():
			if !ok {
				return
			}
			m.applyMessage(msg)
		default:
			return
		}
	}
}

func (m *Model) applyMessage(msg bus.Message) {
	switch msg.Kind {
	case bus.KindStatus:
		left := m.fetchPool.Queued() + m.gradePool.Queued()
		m.appendStatus(msg.Text, left)

	case bus.KindGrade:
		if msg.Index >= 0 && msg.Index < len(m.roster) {
			m.roster[msg.Index].Blackbox = msg.Grade
		}
	}
}

func (m *Model) appendStatus(text string, jobsLeft int) {
	m.statusLog = append(m.statusLog, statusLine(text, jobsLeft))
}
