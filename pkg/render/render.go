// Package render formats validation reports for terminals, LLMs and automation.
package render

import "sort"

// Renderer converts a report to formatted output.
type Renderer interface {
	Render(r Report) string
}

// Report is the outcome of one CLI invocation over one or more inputs.
type Report struct {
	Command string       `json:"command"`
	Files   []FileResult `json:"files"`
}

// FileResult is the validation outcome for one input.
type FileResult struct {
	Path   string      `json:"path"`
	Format string      `json:"format"`
	Valid  bool        `json:"valid"`
	Errors []string    `json:"errors,omitempty"`
	Issues *IssueStats `json:"issues,omitempty"`
}

// IssueStats summarizes the findings carried by a valid SARIF log.
type IssueStats struct {
	Total      int            `json:"total"`
	Suppressed int            `json:"suppressed"`
	ByLevel    map[string]int `json:"by_level,omitempty"`
}

// Invalid returns the number of inputs that failed validation.
func (r Report) Invalid() int {
	n := 0
	for _, f := range r.Files {
		if !f.Valid {
			n++
		}
	}
	return n
}

// ErrorCount returns the total number of validation messages.
func (r Report) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Errors)
	}
	return n
}

// sortedFiles orders invalid inputs first, then by path.
func sortedFiles(files []FileResult) []FileResult {
	out := make([]FileResult, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Valid != out[j].Valid {
			return !out[i].Valid
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// levelOrder is the display order of SARIF levels.
var levelOrder = []string{"error", "warning", "note", "none"}
