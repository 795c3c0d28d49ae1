package sarif

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantVersion = "2.1.0"

// minimalSARIF is the smallest valid SARIF document.
const minimalSARIF = `{"version":"` + wantVersion + `","runs":[{"tool":{"driver":{"name":"test"}},"results":[]}]}`

func TestRead_ValidDocument(t *testing.T) {
	doc, err := Read(strings.NewReader(minimalSARIF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != wantVersion {
		t.Errorf("expected version %s, got %s", wantVersion, doc.Version)
	}
}

func TestRead_ValidWithTrailingWhitespace(t *testing.T) {
	input := minimalSARIF + "   \n\t\n  "
	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("trailing whitespace should be accepted, got error: %v", err)
	}
	if doc.Version != wantVersion {
		t.Errorf("expected version %s, got %s", wantVersion, doc.Version)
	}
}

func TestRead_TrailingGarbageText(t *testing.T) {
	input := minimalSARIF + `garbage`
	_, err := Read(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for trailing garbage text, got nil")
	}
	if !strings.Contains(err.Error(), "trailing data") {
		t.Errorf("expected trailing data error, got: %v", err)
	}
}

func TestRead_TrailingJSONObject(t *testing.T) {
	input := minimalSARIF + `{"extra":"object"}`
	_, err := Read(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for trailing JSON object, got nil")
	}
	if !strings.Contains(err.Error(), "trailing data") {
		t.Errorf("expected trailing data error, got: %v", err)
	}
}

func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`not json`))
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestRead_MissingVersion(t *testing.T) {
	_, err := Read(strings.NewReader(`{"runs":[]}`))
	if !errors.Is(err, ErrMissingVersion) {
		t.Fatalf("expected ErrMissingVersion, got %v", err)
	}
}

func TestReadBytes_ValidDocument(t *testing.T) {
	doc, err := ReadBytes([]byte(minimalSARIF))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != wantVersion {
		t.Errorf("expected version %s, got %s", wantVersion, doc.Version)
	}
}

func TestReadBytes_TrailingGarbage(t *testing.T) {
	input := minimalSARIF + `{"extra":true}`
	_, err := ReadBytes([]byte(input))
	if !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData via ReadBytes, got %v", err)
	}
}

const richSARIF = `{
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {
      "name": "gosec",
      "version": "2.18.0",
      "rules": [
        {"id": "G101", "shortDescription": {"text": "Hardcoded credentials"}, "defaultConfiguration": {"level": "error"}},
        {"id": "G104", "shortDescription": {"text": "Unhandled errors"}}
      ]
    }},
    "results": [
      {"ruleId": "G101", "message": {"text": "password in source"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "file:///src/auth.go"}, "region": {"startLine": 12}}}]},
      {"ruleIndex": 1, "level": "warning", "message": {"text": "error ignored"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "src/db.go"}}}]},
      {"ruleId": "G104", "message": {"text": "error ignored"},
       "locations": [{"physicalLocation": {"artifactLocation": {"uri": "src/db.go"}}}]},
      {"ruleId": "G104", "message": {"text": "known"},
       "suppressions": [{"kind": "inSource", "justification": "checked upstream"}]}
    ]
  }]
}`

func TestReadFile_Rich(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosec.sarif")
	require.NoError(t, os.WriteFile(path, []byte(richSARIF), 0o600))

	doc, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Runs, 1)

	run := &doc.Runs[0]
	assert.Equal(t, "gosec", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "Hardcoded credentials", run.Tool.Driver.Rules[0].ShortDescription.Text)

	assert.Equal(t, "G104", run.RuleID(run.Results[1]))
	assert.Equal(t, "G101", run.RuleFor(run.Results[0]).ID)
	assert.Equal(t, LevelError, run.Results[0].EffectiveLevel(run.RuleFor(run.Results[0])))
	assert.Equal(t, LevelWarning, run.Results[2].EffectiveLevel(run.RuleFor(run.Results[2])))
	assert.True(t, run.Results[3].Suppressed())
	assert.Equal(t, "/src/auth.go", run.Results[0].File())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.sarif"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sarif file")
}

func TestComputeStats(t *testing.T) {
	doc, err := ReadBytes([]byte(richSARIF))
	require.NoError(t, err)

	stats := ComputeStats(doc)
	assert.Equal(t, 3, stats.TotalIssues)
	assert.Equal(t, 1, stats.Suppressed)
	assert.Equal(t, map[string]int{"error": 1, "warning": 2}, stats.ByLevel)
	assert.Equal(t, map[string]int{"G101": 1, "G104": 2}, stats.ByRule)
	assert.Equal(t, map[string]int{"/src/auth.go": 1, "src/db.go": 2}, stats.ByFile)

	assert.Equal(t, []FileIssue{{File: "src/db.go", IssueCount: 2}, {File: "/src/auth.go", IssueCount: 1}}, TopFiles(stats, 0))
	assert.Len(t, TopFiles(stats, 1), 1)
}

func TestEffectiveLevel_Kind(t *testing.T) {
	assert.Equal(t, LevelNone, Result{Kind: KindPass}.EffectiveLevel(nil))
	assert.Equal(t, LevelWarning, Result{Kind: KindFail}.EffectiveLevel(nil))
	assert.Equal(t, LevelNote, Result{Kind: KindPass, Level: LevelNote}.EffectiveLevel(nil))
}

func TestSuppressed_Status(t *testing.T) {
	assert.False(t, Result{}.Suppressed())
	assert.True(t, Result{Suppressions: []Suppression{{Kind: "external", Status: "accepted"}}}.Suppressed())
	assert.False(t, Result{Suppressions: []Suppression{{Kind: "external", Status: "underReview"}}}.Suppressed())
	assert.False(t, Result{Suppressions: []Suppression{{Kind: "inSource", Status: "rejected"}}}.Suppressed())
}
