package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
)

func newWrapCmd(a *app) *cobra.Command {
	wrap := &cobra.Command{
		Use:   "wrap",
		Short: "Wrap plain tool output in a machine-readable format",
	}

	var toolName, ruleID, level, toolVersion string
	sarifCmd := &cobra.Command{
		Use:   "sarif",
		Short: "Build a SARIF log from file:line:col diagnostics on stdin",
		Long: `Read compiler-style diagnostics from stdin and write a SARIF 2.1.0 log
that convert and validate accept. Recognized line shapes:

  file.go:12:5: message
  file.go:12: message
  path/to/file.go        (file only, e.g. gofmt -l)

Other lines are dropped.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if toolName == "" {
				return fmt.Errorf("wrap sarif: --tool is required")
			}
			switch level {
			case sarif.LevelError, sarif.LevelWarning, sarif.LevelNote, sarif.LevelNone:
			default:
				return fmt.Errorf("wrap sarif: invalid level %q (expected error, warning, note or none)", level)
			}
			return a.wrapSARIF(toolName, toolVersion, ruleID, level)
		},
	}
	sarifCmd.Flags().StringVar(&toolName, "tool", "", "Tool name for SARIF driver.name (required)")
	sarifCmd.Flags().StringVar(&ruleID, "rule", "finding", "Rule id given to every result")
	sarifCmd.Flags().StringVar(&level, "level", sarif.LevelWarning, "Result level: error, warning, note, none")
	sarifCmd.Flags().StringVar(&toolVersion, "tool-version", "", "Tool version string")

	wrap.AddCommand(sarifCmd)
	return wrap
}

func (a *app) wrapSARIF(toolName, toolVersion, ruleID, level string) error {
	b := sarif.NewBuilder(toolName, toolVersion)
	scanner := bufio.NewScanner(a.stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	dropped := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		file, ln, col, msg := parseDiagLine(line)
		if file == "" {
			dropped++
			continue
		}
		b.AddResult(ruleID, level, msg, file, ln, col)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("wrap sarif: read stdin: %w", err)
	}
	if dropped > 0 {
		a.log.WithField("lines", dropped).Debug("dropped unrecognized lines")
	}

	if _, err := b.WriteTo(a.stdout); err != nil {
		return fmt.Errorf("wrap sarif: write output: %w", err)
	}
	return nil
}

// parseDiagLine parses compiler diagnostic formats:
//  1. file.go:line:col: message
//  2. file.go:line: message
//  3. path/to/file.go  (file-only, e.g., gofmt -l)
//
// Handles Windows drive-letter prefixes (e.g. C:\path\file.go:10:5: msg).
func parseDiagLine(line string) (file string, ln, col int, msg string) {
	rest := line
	var prefix string

	// Strip Windows drive letter (e.g. "C:") so the colon-split works.
	if len(rest) >= 3 && rest[1] == ':' && (rest[2] == '\\' || rest[2] == '/') {
		prefix = rest[:2]
		rest = rest[2:]
	}

	parts := strings.SplitN(rest, ":", 4)
	if len(parts) >= 4 {
		var l, c int
		if _, err := fmt.Sscanf(parts[1], "%d", &l); err == nil {
			if _, err := fmt.Sscanf(parts[2], "%d", &c); err == nil {
				return prefix + parts[0], l, c, strings.TrimSpace(parts[3])
			}
		}
	}

	if len(parts) >= 3 {
		var l int
		if _, err := fmt.Sscanf(parts[1], "%d", &l); err == nil {
			return prefix + parts[0], l, 0, strings.TrimSpace(strings.Join(parts[2:], ":"))
		}
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, ".go") || strings.Contains(trimmed, "/") {
		if !strings.Contains(trimmed, " ") {
			return trimmed, 0, 0, "needs formatting"
		}
	}

	return "", 0, 0, ""
}
