package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sarif2xccdf/pkg/xccdf"
)

const lintSARIF = `{"version":"2.1.0","runs":[{"tool":{"driver":{"name":"golangci-lint","version":"1.55.0","rules":[{"id":"errcheck","defaultConfiguration":{"level":"error"}}]}},"results":[
	{"ruleId":"ineffassign","level":"error","message":{"text":"assigned but not used: resp"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"internal/handler.go"},"region":{"startLine":12,"startColumn":5}}}]},
	{"ruleId":"errcheck","message":{"text":"error return value not checked"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"internal/handler.go"},"region":{"startLine":45,"startColumn":12}}}]},
	{"ruleId":"govet","level":"warning","message":{"text":"printf format %s has arg of wrong type"},"locations":[{"physicalLocation":{"artifactLocation":{"uri":"pkg/api/client.go"},"region":{"startLine":23,"startColumn":8}}}]}
]}]}`

const demoBenchmarkJSON = `{"id":"xccdf_org.example_benchmark_demo","status":[{"status":"draft"}],"version":{"value":"1.0"}}`

// isolate runs the test in an empty working directory with no reachable
// config file and no tool environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("NO_COLOR", "")
	for _, key := range []string{
		"SARIF_SCHEMA", "XCCDF_SCHEMA", "XMLLINT", "FORMAT", "THEME",
		"JOBS", "DEBUG", "NAMESPACE", "STATUS", "TARGET",
	} {
		t.Setenv("SARIF2XCCDF_"+key, "")
	}
	return dir
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	return name
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestValidate_SARIFFromStdin(t *testing.T) {
	isolate(t)

	code, out, stderr := runCLI(t, lintSARIF, "--format", "llm", "validate", "-")

	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, out, "SCOPE: validate: 1 files, all valid\n")
	assert.Contains(t, out, "OK <stdin> (sarif) [3 issues: 2 error, 1 warning]")
	assert.NotContains(t, out, "\033[")
}

func TestValidate_MixedInputs(t *testing.T) {
	isolate(t)
	writeFile(t, "ok.sarif", `{"version":"2.1.0","runs":[]}`)
	writeFile(t, "bad.sarif", `{"version":"2.0.0","runs":[]}`)
	writeFile(t, "notes.txt", "plain text\n")

	code, out, stderr := runCLI(t, "", "--format", "llm", "--jobs", "2", "validate", "ok.sarif", "bad.sarif", "notes.txt")

	assert.Equal(t, exitInvalid, code, "stderr: %s", stderr)
	assert.Contains(t, out, "SCOPE: validate: 3 files, 2 invalid")
	assert.Contains(t, out, "FAIL bad.sarif (sarif)\n  ERR /version")
	assert.Contains(t, out, "FAIL notes.txt (unknown)\n  ERR unrecognized input format")
	assert.Contains(t, out, "OK ok.sarif (sarif) [0 issues]")
}

func TestValidate_MissingFileExitTwo(t *testing.T) {
	isolate(t)

	code, out, stderr := runCLI(t, "", "validate", "nope.sarif")

	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.True(t, strings.HasPrefix(stderr, "sarif2xccdf: validate: read nope.sarif"), stderr)
}

func TestValidate_NoArgsExitTwo(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "", "validate")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "requires at least 1 arg")
}

func TestValidate_SARIFSubcommandJSON(t *testing.T) {
	isolate(t)
	writeFile(t, "lint.sarif", lintSARIF)
	writeFile(t, "broken.sarif", `{"version":`)

	code, out, _ := runCLI(t, "", "--format", "json", "validate", "sarif", "lint.sarif", "broken.sarif")
	assert.Equal(t, exitInvalid, code)

	var decoded struct {
		Summary struct {
			Files   int `json:"files"`
			Invalid int `json:"invalid"`
		} `json:"summary"`
		Files []struct {
			Path   string   `json:"path"`
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 2, decoded.Summary.Files)
	assert.Equal(t, 1, decoded.Summary.Invalid)
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, "lint.sarif", decoded.Files[0].Path)
	assert.True(t, decoded.Files[0].Valid)
	assert.False(t, decoded.Files[1].Valid)
	assert.Contains(t, decoded.Files[1].Errors[0], "parse sarif")
}

func TestValidate_XCCDFWithoutEngine(t *testing.T) {
	isolate(t)
	writeFile(t, "bench.json", demoBenchmarkJSON)
	writeFile(t, "bench.xml", "<Benchmark/>")

	code, out, _ := runCLI(t, "", "--format", "llm", "--xmllint", "/nonexistent/xmllint", "validate", "bench.json", "bench.xml")

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "FAIL bench.json (benchmark)\n  ERR xmllint executable not found")
	assert.Contains(t, out, "FAIL bench.xml (xccdf)\n  ERR xmllint executable not found")
}

func TestValidate_XCCDFSubcommandRejectsBadBenchmarkJSON(t *testing.T) {
	isolate(t)
	writeFile(t, "bench.json", `{"id":"x","status":[],"version":{"value":"1"},"bogus":true}`)

	code, out, _ := runCLI(t, "", "--format", "llm", "validate", "xccdf", "bench.json")

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "ERR decode benchmark")
}

func TestValidate_ConfigFileSetsFormat(t *testing.T) {
	isolate(t)
	writeFile(t, ".sarif2xccdf.yaml", "format: json\n")

	code, out, _ := runCLI(t, lintSARIF, "validate", "-")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "{"), out)
}

func TestRun_BadConfigExitTwo(t *testing.T) {
	isolate(t)
	writeFile(t, ".sarif2xccdf.yaml", "format: xml\n")

	code, _, stderr := runCLI(t, lintSARIF, "validate", "-")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "sarif2xccdf: config validation failed: invalid format value: xml")

	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "sarif2xccdf version")
}

func TestRun_DebugLogsToStderr(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, lintSARIF, "--debug", "--format", "llm", "validate", "-")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "resolved config")
}

func TestSerialize(t *testing.T) {
	isolate(t)
	writeFile(t, "bench.json", demoBenchmarkJSON)

	code, out, stderr := runCLI(t, "", "serialize", "bench.json")
	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.True(t, strings.HasPrefix(out, xccdf.Header))
	assert.Contains(t, out, `id="xccdf_org.example_benchmark_demo"`)

	code, _, _ = runCLI(t, "", "serialize", "bench.json", "-o", "out.xml")
	assert.Equal(t, exitOK, code)
	written, err := os.ReadFile("out.xml")
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestSerialize_PreconditionExitTwo(t *testing.T) {
	isolate(t)
	writeFile(t, "bench.json", `{"id":"xccdf_org.example_benchmark_demo","status":[{"status":"draft"}],"version":{"value":""}}`)

	code, out, stderr := runCLI(t, "", "serialize", "bench.json")
	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.Equal(t, "sarif2xccdf: serialize: xccdf: missing required field: version.value\n", stderr)
}

func TestConvert_ToStdout(t *testing.T) {
	isolate(t)
	writeFile(t, "lint.sarif", lintSARIF)

	code, out, stderr := runCLI(t, "", "convert", "lint.sarif", "--namespace", "org.example", "--target", "ci")
	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.True(t, strings.HasPrefix(out, xccdf.Header))
	assert.Contains(t, out, `id="xccdf_org.example_benchmark_golangci-lint"`)
	assert.Contains(t, out, `<rule-result idref="xccdf_org.example_rule_errcheck"`)
	assert.Contains(t, out, "<target>ci</target>")
}

func TestConvert_ConfigDefaults(t *testing.T) {
	isolate(t)
	writeFile(t, "lint.sarif", lintSARIF)
	writeFile(t, ".sarif2xccdf.yaml", "convert:\n  namespace: com.acme\n  status: interim\n")

	code, out, _ := runCLI(t, "", "convert", "lint.sarif")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, `id="xccdf_com.acme_benchmark_golangci-lint"`)
	assert.Contains(t, out, ">interim</status>")
}

func TestConvert_InvalidStatusExitTwo(t *testing.T) {
	isolate(t)
	writeFile(t, "lint.sarif", lintSARIF)

	code, out, stderr := runCLI(t, "", "convert", "lint.sarif", "--status", "final")
	assert.Equal(t, exitError, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, `sarif2xccdf: convert: invalid benchmark status "final"`)
}

func TestConvert_ValidateRejectsBadSARIF(t *testing.T) {
	isolate(t)
	writeFile(t, "bad.sarif", `{"version":"2.1.0","runs":[{}]}`)

	code, out, stderr := runCLI(t, "", "--format", "llm", "convert", "bad.sarif", "--validate")
	assert.Equal(t, exitInvalid, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "FAIL bad.sarif (sarif)")
}

func TestConvert_ValidateOutputToFile(t *testing.T) {
	isolate(t)
	writeFile(t, "lint.sarif", lintSARIF)

	code, out, _ := runCLI(t, "", "--format", "llm", "--xmllint", "/nonexistent/xmllint",
		"convert", "lint.sarif", "-o", "bench.xml", "--validate")

	// The SARIF input passes; the XSD check cannot run without xmllint.
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "OK lint.sarif (sarif)")
	assert.Contains(t, out, "FAIL bench.xml (xccdf)")

	written, err := os.ReadFile("bench.xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), xccdf.Header))
}

func TestWrapSARIF_ConvertsLineDiagnostics(t *testing.T) {
	isolate(t)
	input := "main.go:15:3: unreachable code after return\npkg/util.go:42: unused variable x\nnot a diagnostic\n"

	code, out, stderr := runCLI(t, input, "wrap", "sarif", "--tool", "govet")
	assert.Equal(t, exitOK, code, "stderr: %s", stderr)
	assert.Contains(t, out, `"version": "2.1.0"`)
	assert.Contains(t, out, `"name": "govet"`)
	assert.Contains(t, out, `"uri": "main.go"`)
	assert.Contains(t, out, `"startLine": 15`)
	assert.Contains(t, out, `"startColumn": 3`)

	// The wrapped log feeds straight back into validation.
	writeFile(t, "wrapped.sarif", out)
	code, report, _ := runCLI(t, "", "--format", "llm", "validate", "wrapped.sarif")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, report, "OK wrapped.sarif (sarif) [2 issues: 2 warning]")
}

func TestWrapSARIF_FileOnly(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "pkg/handler.go\nmain.go\n", "wrap", "sarif", "--tool", "gofmt", "--rule", "needs-formatting", "--level", "note")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, `"uri": "pkg/handler.go"`)
	assert.Contains(t, out, `"level": "note"`)
}

func TestWrapSARIF_UsageErrors(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, "x.go:1: msg\n", "wrap", "sarif")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "--tool is required")

	code, _, stderr = runCLI(t, "x.go:1: msg\n", "wrap", "sarif", "--tool", "vet", "--level", "fatal")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, `invalid level "fatal"`)
}

func TestVersion(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(out, "sarif2xccdf version "))
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "llm", resolveFormat("auto", &buf))
	assert.Equal(t, "json", resolveFormat("json", &buf))
	assert.Equal(t, 80, termWidth(&buf))
}

func TestParseDiagLine(t *testing.T) {
	tests := []struct {
		input             string
		wantFile          string
		wantLine, wantCol int
		wantMsg           string
	}{
		{"main.go:15:3: unreachable code", "main.go", 15, 3, "unreachable code"},
		{"pkg/util.go:42: unused variable x", "pkg/util.go", 42, 0, "unused variable x"},
		{"pkg/handler.go", "pkg/handler.go", 0, 0, "needs formatting"},
		{`C:\Users\dev\main.go:15:3: unreachable code`, `C:\Users\dev\main.go`, 15, 3, "unreachable code"},
		{`D:\proj\util.go:42: unused`, `D:\proj\util.go`, 42, 0, "unused"},
		{"not a diagnostic", "", 0, 0, ""},
	}
	for _, tt := range tests {
		file, ln, col, msg := parseDiagLine(tt.input)
		if file != tt.wantFile || ln != tt.wantLine || col != tt.wantCol || msg != tt.wantMsg {
			t.Errorf("parseDiagLine(%q) = (%q,%d,%d,%q), want (%q,%d,%d,%q)",
				tt.input, file, ln, col, msg, tt.wantFile, tt.wantLine, tt.wantCol, tt.wantMsg)
		}
	}
}
