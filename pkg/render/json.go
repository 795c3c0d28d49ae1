package render

import (
	"github.com/goccy/go-json"
)

// JSON renders reports as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version string       `json:"version"`
	Command string       `json:"command"`
	Summary jsonSummary  `json:"summary"`
	Files   []FileResult `json:"files"`
}

type jsonSummary struct {
	Files   int `json:"files"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Render formats the report as JSON.
func (j *JSON) Render(r Report) string {
	files := r.Files
	if files == nil {
		files = []FileResult{}
	}
	invalid := r.Invalid()
	out := jsonOutput{
		Version: "1",
		Command: r.Command,
		Summary: jsonSummary{
			Files:   len(files),
			Valid:   len(files) - invalid,
			Invalid: invalid,
		},
		Files: files,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
