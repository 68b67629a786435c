package controller

import "github.com/charmbracelet/lipgloss"

// Color constants - Dracula theme, matching the rest of this codebase's TUI.
const (
	colorBackground  = "#282a36"
	colorCurrentLine = "#44475a"
	colorForeground  = "#f8f8f2"
	colorComment     = "#6272a4"
	colorCyan        = "#8be9fd"
	colorGreen       = "#50fa7b"
	colorOrange      = "#ffb86c"
	colorPink        = "#ff79c6"
	colorPurple      = "#bd93f9"
	colorRed         = "#ff5555"
	colorYellow      = "#f1fa8c"
)

const focusedSuffix = " * "

// create a common style with the given foreground color
func color(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// styles holds every lipgloss style the view projector needs.
type styles struct {
	border        lipgloss.Style
	focusedBorder lipgloss.Style

	title   lipgloss.Style
	status  lipgloss.Style
	output  lipgloss.Style
	gradeOK lipgloss.Style
	gradeNA lipgloss.Style
	bottom  lipgloss.Style
}

func newStyles() styles {
	return styles{
		border:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(colorCurrentLine)),
		focusedBorder: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(colorPink)),

		title:   color(colorCyan).Bold(true),
		status:  color(colorPurple),
		output:  color(colorForeground),
		gradeOK: color(colorGreen),
		gradeNA: color(colorComment),
		bottom:  color(colorYellow),
	}
}

// paneBorder returns the border style for a pane, applying the focused
// look and title suffix convention spec.md §4.8 describes.
func paneBorder(s styles, focused bool) lipgloss.Style {
	if focused {
		return s.focusedBorder
	}

	return s.border
}

func paneTitle(s styles, title string, focused bool) string {
	if focused {
		title += focusedSuffix
	}

	return s.title.Render(title)
}
