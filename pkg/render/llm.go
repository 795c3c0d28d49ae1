package render

import (
	"fmt"
	"strings"
)

// maxLLMErrors caps the messages listed per input.
const maxLLMErrors = 10

// LLM renders reports as terse plain text optimized for AI consumption.
// Zero ANSI codes, deterministic sort, SCOPE line, capped message lists.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats the report for LLM consumption.
func (l *LLM) Render(r Report) string {
	var sb strings.Builder
	sb.WriteString("SCOPE: " + scope(r) + "\n")

	for _, f := range sortedFiles(r.Files) {
		if f.Valid {
			sb.WriteString(fmt.Sprintf("\nOK %s (%s)", f.Path, f.Format))
			if f.Issues != nil {
				sb.WriteString(" " + issueSummary(f.Issues))
			}
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(fmt.Sprintf("\nFAIL %s (%s)\n", f.Path, f.Format))
		shown := f.Errors
		if len(shown) > maxLLMErrors {
			shown = shown[:maxLLMErrors]
		}
		for _, e := range shown {
			// One message per line keeps the output greppable.
			sb.WriteString("  ERR " + strings.ReplaceAll(e, "\n", " ") + "\n")
		}
		if len(f.Errors) > maxLLMErrors {
			sb.WriteString(fmt.Sprintf("  ... (%d more errors)\n", len(f.Errors)-maxLLMErrors))
		}
	}
	return sb.String()
}

func scope(r Report) string {
	parts := []string{fmt.Sprintf("%d files", len(r.Files))}
	invalid := r.Invalid()
	if invalid == 0 {
		parts = append(parts, "all valid")
	} else {
		parts = append(parts, fmt.Sprintf("%d invalid", invalid), fmt.Sprintf("%d errors", r.ErrorCount()))
	}
	if r.Command != "" {
		return r.Command + ": " + strings.Join(parts, ", ")
	}
	return strings.Join(parts, ", ")
}

// issueSummary formats SARIF finding counts as "[3 issues: 1 error, 2 warning; 1 suppressed]".
func issueSummary(s *IssueStats) string {
	var levels []string
	for _, level := range levelOrder {
		if n := s.ByLevel[level]; n > 0 {
			levels = append(levels, fmt.Sprintf("%d %s", n, level))
		}
	}
	out := fmt.Sprintf("%d issues", s.Total)
	if len(levels) > 0 {
		out += ": " + strings.Join(levels, ", ")
	}
	if s.Suppressed > 0 {
		out += fmt.Sprintf("; %d suppressed", s.Suppressed)
	}
	return "[" + out + "]"
}
