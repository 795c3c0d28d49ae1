package sarif

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// ErrTrailingData is returned when non-whitespace follows the JSON document.
var ErrTrailingData = errors.New("trailing data after sarif document")

// ErrMissingVersion is returned for a document without a version.
var ErrMissingVersion = errors.New("missing sarif version")

// ReadFile parses a SARIF file from disk.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sarif file: %w", err)
	}
	return ReadBytes(data)
}

// Read parses SARIF from an io.Reader.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sarif: %w", err)
	}
	return ReadBytes(data)
}

// ReadBytes parses SARIF from a byte slice. Trailing whitespace is
// accepted; anything else after the document is ErrTrailingData.
func ReadBytes(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode sarif: %w", err)
	}
	if rest := bytes.TrimSpace(data[dec.InputOffset():]); len(rest) > 0 {
		return nil, ErrTrailingData
	}

	if doc.Version == "" {
		return nil, ErrMissingVersion
	}

	return &doc, nil
}

// IsSARIF reports whether data looks like a SARIF log: a JSON object with
// a version and a runs member.
func IsSARIF(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return false
	}

	var probe struct {
		Version string          `json:"version"`
		Runs    json.RawMessage `json:"runs"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&probe); err != nil {
		return false
	}
	return probe.Version != "" && len(probe.Runs) > 0
}

// NormalizePath strips a file:// scheme from an artifact URI.
func NormalizePath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// Stats aggregates statistics from SARIF results.
type Stats struct {
	TotalIssues int
	Suppressed  int
	ByLevel     map[string]int // error, warning, note, none
	ByRule      map[string]int
	ByFile      map[string]int
}

// ComputeStats calculates aggregate statistics from a SARIF document.
// Suppressed results are counted separately and excluded from the maps.
func ComputeStats(doc *Document) Stats {
	stats := Stats{
		ByLevel: make(map[string]int),
		ByRule:  make(map[string]int),
		ByFile:  make(map[string]int),
	}

	for _, run := range doc.Runs {
		for _, result := range run.Results {
			if result.Suppressed() {
				stats.Suppressed++
				continue
			}
			stats.TotalIssues++
			stats.ByLevel[result.EffectiveLevel(run.RuleFor(result))]++
			stats.ByRule[result.RuleID]++

			if file := result.File(); file != "" {
				stats.ByFile[file]++
			}
		}
	}

	return stats
}

// FileIssue is the issue count for one file.
type FileIssue struct {
	File       string
	IssueCount int
}

// TopFiles returns files sorted by issue count, descending, then by name.
func TopFiles(stats Stats, limit int) []FileIssue {
	files := make([]FileIssue, 0, len(stats.ByFile))
	for file, n := range stats.ByFile {
		files = append(files, FileIssue{File: file, IssueCount: n})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].IssueCount != files[j].IssueCount {
			return files[i].IssueCount > files[j].IssueCount
		}
		return files[i].File < files[j].File
	})

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files
}

// RuleFor resolves the rule a result refers to, by index first and then by
// id among the driver's rules. It returns nil when the rule is not declared.
func (r *Run) RuleFor(res Result) *ReportingDescriptor {
	rules := r.Tool.Driver.Rules
	idx := res.RuleIndex
	if idx == nil && res.Rule != nil {
		idx = res.Rule.Index
	}
	if idx != nil && *idx >= 0 && *idx < len(rules) {
		return &rules[*idx]
	}

	id := res.RuleID
	if id == "" && res.Rule != nil {
		id = res.Rule.ID
	}
	for i := range rules {
		if rules[i].ID == id {
			return &rules[i]
		}
	}
	return nil
}

// RuleID returns the rule identifier of res, resolving rule references.
func (r *Run) RuleID(res Result) string {
	if res.RuleID != "" {
		return res.RuleID
	}
	if res.Rule != nil && res.Rule.ID != "" {
		return res.Rule.ID
	}
	if rule := r.RuleFor(res); rule != nil {
		return rule.ID
	}
	return ""
}
