// Package controller implements the interactive grading TUI: the state
// machine described in spec.md §4.7, driven by bubbletea.
package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jiegec/classroom-helper/bus"
	"github.com/jiegec/classroom-helper/config"
	"github.com/jiegec/classroom-helper/gitops"
	"github.com/jiegec/classroom-helper/grader"
	"github.com/jiegec/classroom-helper/roster"
	"github.com/jiegec/classroom-helper/workpool"
)

const naText = "N/A"
const waitingText = "Waiting..."

// Model is the bubbletea model owning every piece of controller state:
// roster, focus/mode/selection, and the two worker pools' message bus.
// Only the foreground goroutine (bubbletea's program loop) ever mutates it;
// workers only ever hold copies of the inputs they were submitted with.
type Model struct {
	ctx      context.Context
	settings *config.Settings
	roster   roster.Roster

	bus       bus.Bus
	fetchPool *workpool.Pool
	gradePool *workpool.Pool

	focus    Pane
	selected int // -1 means no selection
	mode     Mode

	numBuffer     string
	commentBuffer string
	last          lastGrade

	statusLog []string

	logText, diffText   string
	logLines, diffLines []string
	logScroll, diffScroll int

	table    table.Model
	logVP    viewport.Model
	diffVP   viewport.Model

	sty    styles
	width  int
	height int
	ready  bool
	quitting bool
}

// New builds the initial Model for a loaded roster and configuration. r is
// taken over by the model; nothing else may mutate it afterward.
func New(ctx context.Context, settings *config.Settings, r roster.Roster) *Model {
	m := &Model{
		ctx:      ctx,
		settings: settings,
		roster:   r,

		bus:       bus.New(ctx),
		fetchPool: workpool.New(settings.FetchWorkers),
		// Grading runs arbitrary student code; serialized to one worker to
		// avoid crosstalk between concurrent graders and CPU oversubscription.
		gradePool: workpool.New(1),

		selected: -1,
		sty:      newStyles(),

		logText:  naText,
		diffText: naText,
		logLines: []string{naText},
		diffLines: []string{naText},
	}

	m.table = table.New(
		table.WithColumns(studentColumns(m.roster)),
		table.WithRows(studentRows(m.roster)),
		table.WithFocused(false),
	)

	m.logVP = viewport.New(0, 0)
	m.diffVP = viewport.New(0, 0)

	sum := roster.Summarize(m.roster)
	m.appendStatus(fmt.Sprintf("Loaded %d students (%d graded, %d commented)", sum.Total, sum.Graded, sum.Commented), 0)

	return m
}

// Init starts the tick loop; there is nothing else to wait on at startup.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.drain()
		if m.quitting {
			return m, tea.Quit
		}
		return m, tickCmd()
	}

	return m, nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.layout()
}

// studentColumns sizes the GitHub column to max(10, longest handle), per
// spec.md §4.8.
func studentColumns(r roster.Roster) []table.Column {
	ghWidth := 10
	for _, s := range r {
		if l := len(s.GitHub); l > ghWidth {
			ghWidth = l
		}
	}

	return []table.Column{
		{Title: "Name", Width: 12},
		{Title: "GitHub", Width: ghWidth},
		{Title: "Blackbox", Width: 8},
		{Title: "Whitebox", Width: 8},
	}
}

func studentRows(r roster.Roster) []table.Row {
	rows := make([]table.Row, len(r))
	for i, s := range r {
		rows[i] = table.Row{s.Name, s.GitHub, gradeCell(s.Blackbox), gradeCell(s.Whitebox)}
	}

	return rows
}

func gradeCell(g *float64) string {
	if g == nil {
		return naText
	}

	return fmt.Sprintf("%.1f", *g)
}

func statusLine(text string, jobsLeft int) string {
	return fmt.Sprintf("%s (%d jobs left)", text, jobsLeft)
}

// submitSync dispatches a git sync onto the fetch pool, status lines landing
// on the bus the way grader.Run publishes its own.
func (m *Model) submitSync(repo, remoteURL, branch string) {
	b := m.bus
	pool := m.fetchPool

	pool.Submit(func() {
		gitops.Sync(m.ctx, m.settings.Workspace, repo, remoteURL, branch, func(line string) {
			b.Send(bus.Status(line))
		})
	})
}

func (m *Model) submitGrade(index int) {
	if index < 0 || index >= len(m.roster) {
		return
	}

	settings := *m.settings
	settings.Copy = append([]string(nil), m.settings.Copy...)

	job := grader.Job{
		Index:    index,
		GitHub:   m.roster[index].GitHub,
		Settings: &settings,
	}

	b := m.bus
	pool := m.gradePool

	pool.Submit(func() {
		grader.Run(m.ctx, job, b)
	})
}

// resultBytes serializes the current roster into results CSV bytes.
func (m *Model) resultBytes() []byte {
	return roster.Serialize(m.roster)
}

// save writes the current result bytes to the configured results path.
func (m *Model) save() error {
	return os.WriteFile(m.settings.Result, m.resultBytes(), 0o644)
}

// checkoutExists reports whether the student's repo has been cloned.
func (m *Model) checkoutExists(s *roster.Student) bool {
	path := gitops.RepoPath(m.settings.Workspace, m.settings.RepoName(s.GitHub))
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// usageText is the literal help block appended by `h`/`?`, per spec.md
// §4.7.1.
var usageText = strings.Join([]string{
	"Navigation: H J K L move focus, j/k move selection or scroll",
	"Scroll: j/k line, PgUp/PgDn or Ctrl-b/Ctrl-f page, Shift-Up/Shift-Down or Ctrl-u/Ctrl-d half page",
	"Fetch: f sync selected student, F sync template then every student, t sync template only",
	"Grade: g grade selected student, G grade every student",
	"Save/diff: s save results, d show diff of unsaved changes",
	"Manual grade: type digits/. then b (blackbox) or w (whitebox)",
	"Repeat: r repeats the last committed grade and axis",
	"Edit comment: c enters comment mode for the selected student",
}, "\n")
