// Package xmllint validates XML documents against an XSD by running libxml2's xmllint.
package xmllint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultBinary is the executable looked up on PATH when Runner.Path is empty.
const DefaultBinary = "xmllint"

// ErrNotFound is returned when the xmllint executable cannot be located.
var ErrNotFound = errors.New("xmllint executable not found")

// Message is one diagnostic reported by xmllint.
type Message struct {
	Line int
	Text string
}

func (m Message) String() string {
	if m.Line > 0 {
		return fmt.Sprintf("line %d: %s", m.Line, m.Text)
	}
	return m.Text
}

// Result is the structured outcome of one validation.
type Result struct {
	Valid    bool
	Messages []Message
}

// Runner drives the xmllint binary. The zero value uses DefaultBinary from
// PATH and the standard logger.
type Runner struct {
	Path   string
	Logger *logrus.Entry
}

// New returns a Runner for the given executable path ("" for PATH lookup).
func New(path string) *Runner {
	return &Runner{Path: path}
}

// Validate checks xmlText against the schema at xsdPath. A document that
// parses but violates the schema, or does not parse at all, yields a Result
// with Valid false. Failures to run the validator itself (binary missing,
// schema that does not compile, cancelled context) are returned as errors.
func (r *Runner) Validate(ctx context.Context, xmlText, xsdPath string) (*Result, error) {
	bin, err := r.binary()
	if err != nil {
		return nil, err
	}

	log := r.logger().WithFields(logrus.Fields{"xmllint": bin, "schema": xsdPath})

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--noout", "--nonet", "--schema", xsdPath, "-")
	cmd.Stdin = strings.NewReader(xmlText)
	cmd.Stderr = &stderr

	log.Debug("running xmllint")
	err = cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("xmllint: %w", ctxErr)
	}

	if err == nil {
		return &Result{Valid: true}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("run xmllint: %w", err)
	}

	code := exitErr.ExitCode()
	log.WithField("exit", code).Debug("xmllint reported problems")
	switch code {
	case 1, 3, 4:
		return &Result{Valid: false, Messages: ParseOutput(stderr.String())}, nil
	default:
		return nil, fmt.Errorf("xmllint exited with status %d: %s", code, strings.TrimSpace(stderr.String()))
	}
}

func (r *Runner) binary() (string, error) {
	name := r.Path
	if name == "" {
		name = DefaultBinary
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

func (r *Runner) logger() *logrus.Entry {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// diagnostic matches "<file>:<line>: <text>", the shape of every xmllint
// error line.
var diagnostic = regexp.MustCompile(`^(.*?):(\d+): (.*)$`)

// ParseOutput extracts diagnostics from xmllint's stderr. The trailing
// "validates" / "fails to validate" summary is dropped, as are the source
// excerpt and caret lines that follow parser errors. Output with no
// recognisable diagnostic lines is returned line by line.
func ParseOutput(out string) []Message {
	var msgs, raw []Message
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || isSummary(line) {
			continue
		}
		if m := diagnostic.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			msgs = append(msgs, Message{Line: n, Text: strings.TrimSpace(m[3])})
			continue
		}
		raw = append(raw, Message{Text: strings.TrimSpace(line)})
	}
	if len(msgs) == 0 {
		return raw
	}
	return msgs
}

func isSummary(line string) bool {
	return strings.HasSuffix(line, " validates") || strings.HasSuffix(line, " fails to validate")
}
