package sarif

import (
	"io"

	"github.com/goccy/go-json"
)

// Builder constructs SARIF 2.1.0 documents with a single run.
type Builder struct {
	doc *Document
}

// NewBuilder creates a SARIF builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{
		doc: &Document{
			Version: Version,
			Schema:  SchemaURI,
			Runs: []Run{{
				Tool: Tool{
					Driver: ToolComponent{
						Name:    toolName,
						Version: toolVersion,
					},
				},
				Results: []Result{},
			}},
		},
	}
}

func (b *Builder) run() *Run {
	return &b.doc.Runs[0]
}

// AddRule declares a rule on the driver with a short description and a
// default level. Declaring the same id again replaces the earlier entry.
func (b *Builder) AddRule(id, description, level string) *Builder {
	rule := ReportingDescriptor{ID: id}
	if description != "" {
		rule.ShortDescription = &MultiformatMessage{Text: description}
	}
	if level != "" {
		rule.DefaultConfiguration = &ReportingConfiguration{Level: level}
	}

	driver := &b.run().Tool.Driver
	for i := range driver.Rules {
		if driver.Rules[i].ID == id {
			driver.Rules[i] = rule
			return b
		}
	}
	driver.Rules = append(driver.Rules, rule)
	return b
}

// AddResult adds a diagnostic result to the run.
func (b *Builder) AddResult(ruleID, level, message, file string, line, col int) *Builder {
	r := Result{
		RuleID:  ruleID,
		Level:   level,
		Message: Message{Text: message},
	}
	if file != "" {
		loc := Location{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: file},
			},
		}
		if line > 0 {
			loc.PhysicalLocation.Region = &Region{StartLine: line, StartColumn: col}
		}
		r.Locations = []Location{loc}
	}
	b.run().Results = append(b.run().Results, r)
	return b
}

// Suppress marks the most recently added result as suppressed.
func (b *Builder) Suppress(kind, justification string) *Builder {
	results := b.run().Results
	if len(results) == 0 {
		return b
	}
	last := &results[len(results)-1]
	last.Suppressions = append(last.Suppressions, Suppression{
		Kind:          kind,
		Status:        "accepted",
		Justification: justification,
	})
	return b
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the SARIF document as indented JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}
