package controller

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jiegec/classroom-helper/gitops"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeComment {
		m.handleCommentKey(msg)
		return m, nil
	}

	key := msg.String()

	if key == "q" {
		m.quitting = true
		return m, nil
	}

	isDigit := len(key) == 1 && (key[0] >= '0' && key[0] <= '9' || key == ".")

	oldSelected := m.selected
	m.dispatchNormalKey(key)

	if !isDigit {
		m.numBuffer = ""
	}

	if m.selected != oldSelected {
		m.onSelectionChange()
	}

	return m, nil
}

func (m *Model) dispatchNormalKey(key string) {
	switch key {
	case "H":
		m.moveFocus(-1, 0)
	case "L":
		m.moveFocus(1, 0)
	case "J":
		m.moveFocus(0, 1)
	case "K":
		m.moveFocus(0, -1)

	case "j":
		m.handleDown()
	case "k":
		m.handleUp()

	case "h", "?":
		m.appendStatus(usageText, m.jobsLeft())

	case "d":
		m.handleDiffKey()

	case "s":
		m.handleSaveKey()

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		m.numBuffer += key

	case "b":
		m.commitGrade(axisBlackbox)
	case "w":
		m.commitGrade(axisWhitebox)
	case "r":
		m.repeatGrade()

	case "f":
		m.handleSyncSelected()
	case "F":
		m.handleSyncAll()
	case "t":
		m.handleSyncTemplate()

	case "g":
		m.submitGrade(m.selected)
	case "G":
		for i := range m.roster {
			m.submitGrade(i)
		}

	case "c":
		m.enterCommentMode()

	case "pgup", "ctrl+b":
		m.pageLog(-1)
	case "pgdown", "ctrl+f":
		m.pageLog(1)
	case "shift+up", "ctrl+u":
		m.halfPageLog(-1)
	case "shift+down", "ctrl+d":
		m.halfPageLog(1)

	default:
		m.appendStatus("Unhandled key "+key, m.jobsLeft())
	}
}

func (m *Model) jobsLeft() int {
	return m.fetchPool.Queued() + m.gradePool.Queued()
}

// moveFocus transitions the 2x2 focus grid: Students<->Status (vertical),
// Students<->Log and Status<->Diff (horizontal), Log<->Diff (vertical).
// Moves leaving the grid are no-ops. One cell collapses rather than walks
// the grid: H from Diff returns to Students directly (not Status), matching
// the worked focus-cycle trace and original_source's key table.
func (m *Model) moveFocus(dx, dy int) {
	if m.focus == PaneDiff && dx == -1 && dy == 0 {
		m.focus = PaneStudents
		return
	}

	type coord struct{ x, y int }

	grid := map[Pane]coord{
		PaneStudents: {0, 0},
		PaneLog:      {1, 0},
		PaneStatus:   {0, 1},
		PaneDiff:     {1, 1},
	}

	byCoord := make(map[coord]Pane, len(grid))
	for p, c := range grid {
		byCoord[c] = p
	}

	cur := grid[m.focus]
	next := coord{cur.x + dx, cur.y + dy}

	if p, ok := byCoord[next]; ok {
		m.focus = p
	}
}

func (m *Model) handleDown() {
	switch m.focus {
	case PaneStudents:
		m.moveSelection(1)
	case PaneLog:
		m.scrollPane(&m.logScroll, len(m.logLines), 1)
		m.logVP.SetYOffset(m.logScroll)
	case PaneDiff:
		m.scrollPane(&m.diffScroll, len(m.diffLines), 1)
		m.diffVP.SetYOffset(m.diffScroll)
	}
}

func (m *Model) handleUp() {
	switch m.focus {
	case PaneStudents:
		m.moveSelection(-1)
	case PaneLog:
		m.scrollPane(&m.logScroll, len(m.logLines), -1)
		m.logVP.SetYOffset(m.logScroll)
	case PaneDiff:
		m.scrollPane(&m.diffScroll, len(m.diffLines), -1)
		m.diffVP.SetYOffset(m.diffScroll)
	}
}

// moveSelection cycles the selected student down/up with wrap; from none, a
// downward move picks the first and an upward move picks the last.
func (m *Model) moveSelection(delta int) {
	n := len(m.roster)
	if n == 0 {
		return
	}

	if m.selected < 0 {
		if delta > 0 {
			m.selected = 0
		} else {
			m.selected = n - 1
		}
		return
	}

	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *Model) scrollPane(scroll *int, lineCount, delta int) {
	if lineCount <= 0 {
		return
	}

	*scroll = ((*scroll+delta)%lineCount + lineCount) % lineCount
}

func (m *Model) pageLog(dir int) {
	switch m.focus {
	case PaneLog:
		if dir < 0 {
			m.logVP.PageUp()
		} else {
			m.logVP.PageDown()
		}
	case PaneDiff:
		if dir < 0 {
			m.diffVP.PageUp()
		} else {
			m.diffVP.PageDown()
		}
	}
}

func (m *Model) halfPageLog(dir int) {
	switch m.focus {
	case PaneLog:
		if dir < 0 {
			m.logVP.HalfPageUp()
		} else {
			m.logVP.HalfPageDown()
		}
	case PaneDiff:
		if dir < 0 {
			m.diffVP.HalfPageUp()
		} else {
			m.diffVP.HalfPageDown()
		}
	}
}

// onSelectionChange refreshes Log/Diff for the newly selected student, per
// spec.md §4.7.3.
func (m *Model) onSelectionChange() {
	if m.selected < 0 || m.selected >= len(m.roster) {
		m.setLog(naText)
		m.setDiff(naText)
		m.commentBuffer = ""
		return
	}

	s := m.roster[m.selected]
	m.commentBuffer = s.Comment

	if !m.checkoutExists(s) {
		m.setLog(naText)
		m.setDiff(naText)
		return
	}

	repo := m.settings.RepoName(s.GitHub)

	logText, err := gitops.Log(m.ctx, m.settings.Workspace, repo)
	if err != nil {
		logText = naText
	}
	m.setLog(logText)

	m.setDiff(waitingText)

	diffText, err := gitops.Diff(m.ctx, m.settings.Workspace, repo, m.settings.Diff)
	if err != nil {
		diffText = naText
	}
	m.setDiff(diffText)
}

func (m *Model) setLog(text string) {
	m.logText = text
	m.logLines = splitLines(text)
	m.logScroll = 0
	m.logVP.SetContent(text)
	m.logVP.GotoTop()
}

func (m *Model) setDiff(text string) {
	m.diffText = text
	m.diffLines = splitLines(text)
	m.diffScroll = 0
	m.diffVP.SetContent(text)
	m.diffVP.GotoTop()
}

func splitLines(text string) []string {
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])

	if len(lines) == 0 {
		return []string{""}
	}

	return lines
}

// commitGrade parses the numeric buffer as a finite real and assigns it to
// axis on the selected student, per spec.md §4.7.2.
func (m *Model) commitGrade(axis gradeAxis) {
	if m.selected < 0 || m.selected >= len(m.roster) {
		return
	}

	value := parseFiniteGrade(m.numBuffer)

	m.assignGrade(m.selected, axis, value)
	m.last = lastGrade{set: true, value: value, axis: axis}
	m.advanceSelectionAfterGrade()
}

// repeatGrade replays the last committed grade verbatim, with no parse and
// no buffer involvement.
func (m *Model) repeatGrade() {
	if !m.last.set || m.selected < 0 || m.selected >= len(m.roster) {
		return
	}

	m.assignGrade(m.selected, m.last.axis, m.last.value)
	m.advanceSelectionAfterGrade()
}

func (m *Model) assignGrade(index int, axis gradeAxis, value *float64) {
	s := m.roster[index]
	switch axis {
	case axisBlackbox:
		s.Blackbox = value
	case axisWhitebox:
		s.Whitebox = value
	}
}

// advanceSelectionAfterGrade advances selection by one if the selected index
// is not the last.
func (m *Model) advanceSelectionAfterGrade() {
	if m.selected < len(m.roster)-1 {
		m.selected++
	}
}

func parseFiniteGrade(buf string) *float64 {
	if buf == "" {
		return nil
	}

	v, err := strconv.ParseFloat(buf, 64)
	if err != nil {
		return nil
	}

	return &v
}

func (m *Model) handleSyncSelected() {
	if m.selected < 0 || m.selected >= len(m.roster) {
		return
	}

	s := m.roster[m.selected]
	repo := m.settings.RepoName(s.GitHub)
	m.submitSync(repo, m.settings.RepoURL(repo), "master")
}

func (m *Model) handleSyncAll() {
	m.handleSyncTemplate()

	for _, s := range m.roster {
		repo := m.settings.RepoName(s.GitHub)
		m.submitSync(repo, m.settings.RepoURL(repo), "master")
	}
}

func (m *Model) handleSyncTemplate() {
	m.submitSync(m.settings.Template, m.settings.RepoURL(m.settings.Template), m.settings.TemplateBranch)
}

func (m *Model) handleDiffKey() {
	diff, err := gitops.DiffResults(m.ctx, m.settings.Result, m.resultBytes())
	if err != nil {
		diff = naText
	}

	m.setDiff(diff)
}

func (m *Model) handleSaveKey() {
	if err := m.save(); err != nil {
		m.appendStatus("Save failed: "+err.Error(), m.jobsLeft())
		return
	}

	m.appendStatus("Saved to "+m.settings.Result, m.jobsLeft())
}

func (m *Model) enterCommentMode() {
	if m.selected < 0 || m.selected >= len(m.roster) {
		return
	}

	m.mode = ModeComment
	m.commentBuffer = m.roster[m.selected].Comment
}

func (m *Model) handleCommentKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(m.commentBuffer) > 0 {
			m.commentBuffer = m.commentBuffer[:len(m.commentBuffer)-1]
		}
	case tea.KeyEsc:
		m.exitCommentMode()
	case tea.KeyRunes, tea.KeySpace:
		m.commentBuffer += msg.String()
	default:
		m.appendStatus("Unhandled key "+msg.String(), m.jobsLeft())
	}
}

func (m *Model) exitCommentMode() {
	if m.selected >= 0 && m.selected < len(m.roster) {
		s := m.roster[m.selected]
		s.Comment = m.commentBuffer
		m.appendStatus("Editing comment for user "+s.Name+" done", m.jobsLeft())
	}

	m.commentBuffer = ""
	m.mode = ModeNormal
}
