// Package convert turns SARIF logs into XCCDF 1.2 benchmarks with test results.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
	"github.com/dkoosis/sarif2xccdf/pkg/xccdf"
)

// DefaultNamespace is the reverse-DNS namespace used in generated ids.
const DefaultNamespace = "sarif2xccdf"

// DefaultTarget names the test target when neither the options nor the
// SARIF invocation identify one.
const DefaultTarget = "unknown"

// ScoringSystem is the XCCDF default scoring model.
const ScoringSystem = "urn:xccdf:scoring:default"

// IdentSystem labels the ident that carries the original SARIF rule id.
const IdentSystem = "urn:oasis:sarif:2.1.0:ruleId"

var (
	// ErrNilDocument is returned when Convert is given no document.
	ErrNilDocument = errors.New("convert: nil sarif document")
	// ErrNoRuns is returned for a document without runs.
	ErrNoRuns = errors.New("convert: sarif document has no runs")
)

// Options controls id generation and test result metadata.
type Options struct {
	// Namespace is the reverse-DNS part of every id, e.g. "org.example".
	// Underscores are not allowed there and are replaced.
	Namespace string
	// Status is the benchmark status. Defaults to draft.
	Status string
	// Target is the scanned system recorded on each test result.
	Target string
	// Now supplies timestamps when the SARIF invocation has none.
	Now func() time.Time
}

func (o Options) withDefaults() (Options, error) {
	o.Namespace = sanitizeNamespace(o.Namespace)
	if o.Status == "" {
		o.Status = xccdf.StatusDraft
	}
	switch o.Status {
	case xccdf.StatusAccepted, xccdf.StatusDeprecated, xccdf.StatusDraft, xccdf.StatusIncomplete, xccdf.StatusInterim:
	default:
		return o, fmt.Errorf("convert: invalid benchmark status %q", o.Status)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o, nil
}

// Convert maps doc to a benchmark with one Rule per SARIF rule and one
// TestResult per run. The result always satisfies the serializer's
// required fields.
func Convert(doc *sarif.Document, opts Options) (*xccdf.Benchmark, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if len(doc.Runs) == 0 {
		return nil, ErrNoRuns
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	now := opts.Now().UTC()
	driver := doc.Runs[0].Tool.Driver
	tool := toolName(driver)

	b := &xccdf.Benchmark{
		ID:     makeID(opts.Namespace, "benchmark", tool),
		Status: []xccdf.Status{{Status: opts.Status, Date: now.Format(time.DateOnly)}},
		Title:  []xccdf.Text{{Value: title(tool) + " analysis results"}},
		Version: xccdf.Version{
			Value: firstNonEmpty(driver.Version, driver.SemanticVersion, "1.0"),
			Time:  now.Format(time.RFC3339),
		},
		Model: []xccdf.Model{{System: ScoringSystem}},
	}
	if d := describe(driver.FullDescription, driver.ShortDescription); d != "" {
		b.Description = []xccdf.Text{{Value: d}}
	}
	if driver.InformationURI != "" {
		b.Reference = []xccdf.Reference{{Href: driver.InformationURI, Value: driver.Name}}
	}

	c := &converter{
		opts:    opts,
		now:     now,
		seen:    make(map[string]bool),
		ruleIDs: make(map[string]string),
		taken:   make(map[string]bool),
	}
	for i := range doc.Runs {
		run := &doc.Runs[i]
		rules := c.collectRules(run)
		for _, r := range rules {
			if !c.seen[r.xccdfID] {
				c.seen[r.xccdfID] = true
				b.Rule = append(b.Rule, r.rule)
			}
		}
		b.TestResult = append(b.TestResult, c.testResult(run, rules, b.Version.Value, i, len(doc.Runs)))
	}
	return b, nil
}

type converter struct {
	opts Options
	now  time.Time
	seen map[string]bool

	// ruleIDs maps SARIF rule ids to their XCCDF ids across runs. taken
	// holds every XCCDF rule id handed out.
	ruleIDs map[string]string
	taken   map[string]bool
}

// ruleID returns the XCCDF id for a SARIF rule id. Ids that sanitize to an
// id already given to another rule get a numeric suffix in first-seen order.
func (c *converter) ruleID(sarifID string) string {
	if id, ok := c.ruleIDs[sarifID]; ok {
		return id
	}
	base := makeID(c.opts.Namespace, "rule", sarifID)
	id := base
	for n := 2; c.taken[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	c.ruleIDs[sarifID] = id
	c.taken[id] = true
	return id
}

// ruleOutcome gathers the results reported against one rule in one run.
type ruleOutcome struct {
	xccdfID  string
	desc     *sarif.ReportingDescriptor
	rule     xccdf.Rule
	results  []sarif.Result
	severity string
}

// collectRules returns the driver's rules in declaration order followed by
// rules that only appear in results, each with the run's results for it.
func (c *converter) collectRules(run *sarif.Run) []*ruleOutcome {
	var order []*ruleOutcome
	byID := make(map[string]*ruleOutcome)

	add := func(id string, desc *sarif.ReportingDescriptor) *ruleOutcome {
		if o, ok := byID[id]; ok {
			return o
		}
		o := &ruleOutcome{xccdfID: c.ruleID(id), desc: desc}
		o.severity = severityFor(desc)
		o.rule = buildRule(o.xccdfID, id, desc, o.severity)
		byID[id] = o
		order = append(order, o)
		return o
	}

	for i := range run.Tool.Driver.Rules {
		d := &run.Tool.Driver.Rules[i]
		add(d.ID, d)
	}
	for _, res := range run.Results {
		id := run.RuleID(res)
		if id == "" {
			id = "unidentified"
		}
		o := add(id, run.RuleFor(res))
		o.results = append(o.results, res)
	}
	return order
}

func buildRule(xid, sarifID string, d *sarif.ReportingDescriptor, severity string) xccdf.Rule {
	r := xccdf.Rule{Severity: severity}
	r.ID = xid
	r.Title = []xccdf.Text{{Value: sarifID}}
	r.Ident = []xccdf.Ident{{System: IdentSystem, Value: sarifID}}
	if d == nil {
		return r
	}
	if t := firstNonEmpty(textOf(d.ShortDescription), d.Name); t != "" {
		r.Title = []xccdf.Text{{Value: t}}
	}
	if desc := describe(d.FullDescription, d.Help); desc != "" {
		r.Description = []xccdf.Text{{Value: desc}}
	}
	if d.HelpURI != "" {
		r.Reference = []xccdf.Reference{{Href: d.HelpURI, Value: sarifID}}
	}
	return r
}

func (c *converter) testResult(run *sarif.Run, rules []*ruleOutcome, version string, i, runs int) xccdf.TestResult {
	tool := toolName(run.Tool.Driver)
	suffix := tool
	if runs > 1 {
		suffix = tool + "-" + strconv.Itoa(i+1)
	}

	start, end := c.runTimes(run)
	tr := xccdf.TestResult{
		ID:         makeID(c.opts.Namespace, "testresult", suffix),
		StartTime:  start,
		EndTime:    end,
		TestSystem: tool,
		Version:    version,
		Title:      []xccdf.Text{{Value: title(tool) + " run " + strconv.Itoa(i+1)}},
		Target:     []string{c.target(run)},
	}

	var passed, failed int
	for _, o := range rules {
		rr := ruleResult(o, end)
		switch rr.Result {
		case xccdf.ResultPass:
			passed++
		case xccdf.ResultFail:
			failed++
		}
		tr.RuleResult = append(tr.RuleResult, rr)
	}

	score := 100.0
	if passed+failed > 0 {
		score = float64(passed) * 100 / float64(passed+failed)
	}
	maximum := 100.0
	tr.Score = []xccdf.Score{{Value: roundScore(score), System: ScoringSystem, Maximum: &maximum}}
	return tr
}

// ruleResult decides the outcome of one rule:
//   - fail if any unsuppressed result fails;
//   - pass with an override if every failure was suppressed;
//   - informational if only notes were reported;
//   - notapplicable if every result says so;
//   - pass otherwise.
func ruleResult(o *ruleOutcome, at string) xccdf.RuleResult {
	rr := xccdf.RuleResult{
		IDRef:    o.xccdfID,
		Severity: o.severity,
		Time:     at,
		Result:   xccdf.ResultPass,
	}

	var failing, suppressed, notes, notApplicable int
	var firstSuppression *sarif.Suppression
	for _, res := range o.results {
		level := res.EffectiveLevel(o.desc)
		rr.Message = append(rr.Message, xccdf.Message{
			Value:    messageText(res),
			Severity: messageSeverity(level),
		})

		switch {
		case res.Kind == sarif.KindNotApplicable:
			notApplicable++
		case res.Kind == sarif.KindPass:
		case !failingLevel(level) || (res.Kind != "" && res.Kind != sarif.KindFail):
			notes++
		case res.Suppressed():
			suppressed++
			if firstSuppression == nil {
				firstSuppression = activeSuppression(res)
			}
		default:
			failing++
		}
	}

	switch {
	case failing > 0:
		rr.Result = xccdf.ResultFail
	case suppressed > 0:
		rr.Override = []xccdf.Override{{
			Time:      at,
			Authority: firstNonEmpty(firstSuppression.Kind, "suppression"),
			OldResult: xccdf.ResultFail,
			NewResult: xccdf.ResultPass,
			Remark: xccdf.Text{
				Value: firstNonEmpty(firstSuppression.Justification, "suppressed in the analysis log"),
			},
		}}
	case notes > 0:
		rr.Result = xccdf.ResultInformational
	case notApplicable > 0 && notApplicable == len(o.results):
		rr.Result = xccdf.ResultNotApplicable
	}
	return rr
}

func (c *converter) runTimes(run *sarif.Run) (start, end string) {
	end = c.now.Format(time.RFC3339)
	for _, inv := range run.Invocations {
		if t, ok := parseTime(inv.StartTimeUTC); ok && start == "" {
			start = t
		}
		if t, ok := parseTime(inv.EndTimeUTC); ok {
			end = t
		}
	}
	return start, end
}

func (c *converter) target(run *sarif.Run) string {
	if c.opts.Target != "" {
		return c.opts.Target
	}
	for _, inv := range run.Invocations {
		if inv.Machine != "" {
			return inv.Machine
		}
	}
	return DefaultTarget
}

func activeSuppression(res sarif.Result) *sarif.Suppression {
	for i := range res.Suppressions {
		s := &res.Suppressions[i]
		if s.Status == "" || s.Status == "accepted" {
			return s
		}
	}
	return &sarif.Suppression{}
}

func parseTime(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "", false
	}
	return t.UTC().Format(time.RFC3339), true
}

func failingLevel(level string) bool {
	return level == sarif.LevelError || level == sarif.LevelWarning
}

func severityFor(d *sarif.ReportingDescriptor) string {
	level := sarif.LevelWarning
	if d != nil && d.DefaultConfiguration != nil && d.DefaultConfiguration.Level != "" {
		level = d.DefaultConfiguration.Level
	}
	switch level {
	case sarif.LevelError:
		return xccdf.SeverityHigh
	case sarif.LevelWarning:
		return xccdf.SeverityMedium
	case sarif.LevelNote:
		return xccdf.SeverityLow
	case sarif.LevelNone:
		return xccdf.SeverityInfo
	default:
		return xccdf.SeverityUnknown
	}
}

func messageSeverity(level string) string {
	switch level {
	case sarif.LevelError:
		return xccdf.MessageError
	case sarif.LevelWarning:
		return xccdf.MessageWarning
	default:
		return xccdf.MessageInfo
	}
}

// messageText renders a result as "file:line:col: text".
func messageText(res sarif.Result) string {
	text := firstNonEmpty(res.Message.Text, res.Message.Markdown)
	if text == "" && res.Message.ID != "" {
		text = "message " + res.Message.ID
	}
	if text == "" {
		text = "no message"
	}

	file := res.File()
	if file == "" {
		return text
	}
	loc := file
	if r := res.Locations[0].PhysicalLocation.Region; r != nil && r.StartLine > 0 {
		loc += ":" + strconv.Itoa(r.StartLine)
		if r.StartColumn > 0 {
			loc += ":" + strconv.Itoa(r.StartColumn)
		}
	}
	return loc + ": " + text
}

func toolName(d sarif.ToolComponent) string {
	return firstNonEmpty(d.Name, "tool")
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

func describe(msgs ...*sarif.MultiformatMessage) string {
	for _, m := range msgs {
		if t := textOf(m); t != "" {
			return t
		}
	}
	return ""
}

func textOf(m *sarif.MultiformatMessage) string {
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m.Text)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func roundScore(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
