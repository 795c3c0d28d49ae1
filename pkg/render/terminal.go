package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxTerminalErrors caps the messages shown per input.
const maxTerminalErrors = 20

// Terminal renders reports as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the report for terminal display.
func (t *Terminal) Render(r Report) string {
	var sb strings.Builder
	sb.WriteString(t.renderHeader(r))

	for _, f := range sortedFiles(r.Files) {
		sb.WriteString(t.renderFile(f))
	}
	return sb.String()
}

func (t *Terminal) renderHeader(r Report) string {
	label := scope(r)
	icon, style := t.statusIconStyle(r.Invalid() == 0)
	return style.Render(icon) + " " + t.theme.Heading.Render(label) + "\n"
}

func (t *Terminal) renderFile(f FileResult) string {
	var sb strings.Builder
	sb.WriteString("  ")
	icon, style := t.statusIconStyle(f.Valid)
	sb.WriteString(style.Render(icon + " "))
	sb.WriteString(t.theme.Path.Render(t.truncate(f.Path, 6+len(f.Format))))
	sb.WriteString(t.theme.Dim.Render(" " + f.Format))

	if f.Issues != nil {
		sb.WriteString("\n    ")
		sb.WriteString(t.renderIssues(f.Issues))
	}

	shown := f.Errors
	if len(shown) > maxTerminalErrors {
		shown = shown[:maxTerminalErrors]
	}
	for _, e := range shown {
		sb.WriteString("\n    ")
		sb.WriteString(t.theme.Invalid.Render(t.theme.Marks.Detail + " "))
		sb.WriteString(t.truncate(strings.ReplaceAll(e, "\n", " "), 6))
	}
	if len(f.Errors) > maxTerminalErrors {
		sb.WriteString("\n    ")
		sb.WriteString(t.theme.Dim.Render(fmt.Sprintf("... %d more", len(f.Errors)-maxTerminalErrors)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) renderIssues(s *IssueStats) string {
	parts := []string{t.theme.Dim.Render(fmt.Sprintf("%d issues", s.Total))}
	for _, level := range levelOrder {
		n := s.ByLevel[level]
		if n == 0 {
			continue
		}
		icon, style := t.levelIconStyle(level)
		parts = append(parts, style.Render(fmt.Sprintf("%s %d %s", icon, n, level)))
	}
	if s.Suppressed > 0 {
		parts = append(parts, t.theme.Dim.Render(fmt.Sprintf("%d suppressed", s.Suppressed)))
	}
	return strings.Join(parts, "  ")
}

// truncate shortens s so that it fits the terminal after an indent of
// reserved cells. Width is measured in display cells.
func (t *Terminal) truncate(s string, reserved int) string {
	limit := t.width - reserved
	if limit < 10 {
		limit = 10
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, "...")
}

func (t *Terminal) statusIconStyle(valid bool) (string, lipgloss.Style) {
	if valid {
		return t.theme.Marks.Valid, t.theme.Valid
	}
	return t.theme.Marks.Invalid, t.theme.Invalid
}

func (t *Terminal) levelIconStyle(level string) (string, lipgloss.Style) {
	switch level {
	case "error":
		return t.theme.Marks.Error, t.theme.LevelError
	case "warning":
		return t.theme.Marks.Warning, t.theme.LevelWarning
	case "note":
		return t.theme.Marks.Note, t.theme.LevelNote
	default:
		return t.theme.Marks.Note, t.theme.Dim
	}
}
