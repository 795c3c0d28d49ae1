// Package xccdf models XCCDF 1.2 benchmark documents and serializes them to XML.
package xccdf

// Namespace is the XCCDF 1.2 XML namespace.
const Namespace = "http://checklists.nist.gov/xccdf/1.2"

// Benchmark is the root element of an XCCDF document.
// See: https://csrc.nist.gov/publications/detail/nistir/7275/rev-4/final
type Benchmark struct {
	ID        string `json:"id"`
	XMLID     string `json:"Id,omitempty"`
	Resolved  *bool  `json:"resolved,omitempty"`
	Style     string `json:"style,omitempty"`
	StyleHref string `json:"styleHref,omitempty"`
	Lang      string `json:"lang,omitempty"`

	Status      []Status     `json:"status"`
	Title       []Text       `json:"title,omitempty"`
	Description []Text       `json:"description,omitempty"`
	Notice      []Notice     `json:"notice,omitempty"`
	FrontMatter []Text       `json:"frontMatter,omitempty"`
	RearMatter  []Text       `json:"rearMatter,omitempty"`
	Reference   []Reference  `json:"reference,omitempty"`
	PlainText   []PlainText  `json:"plainText,omitempty"`
	Platform    []Platform   `json:"platform,omitempty"`
	Version     Version      `json:"version"`
	Model       []Model      `json:"model,omitempty"`
	Profile     []Profile    `json:"Profile,omitempty"`
	Value       []Value      `json:"Value,omitempty"`
	Group       []Group      `json:"Group,omitempty"`
	Rule        []Rule       `json:"Rule,omitempty"`
	TestResult  []TestResult `json:"TestResult,omitempty"`
}

// Status values.
const (
	StatusAccepted   = "accepted"
	StatusDeprecated = "deprecated"
	StatusDraft      = "draft"
	StatusIncomplete = "incomplete"
	StatusInterim    = "interim"
)

// Status records the maturity of a benchmark or item.
type Status struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
}

// Version identifies a benchmark or item revision.
type Version struct {
	Value  string `json:"value"`
	Time   string `json:"time,omitempty"`
	Update string `json:"update,omitempty"`
}

// Text is localized text. Override marks text that replaces, rather than
// appends to, inherited text.
type Text struct {
	Value    string `json:"value"`
	Lang     string `json:"lang,omitempty"`
	Override *bool  `json:"override,omitempty"`
}

// Warning is descriptive text with a category.
type Warning struct {
	Text
	Category string `json:"category,omitempty"`
}

// Notice is a legal notice or copyright statement.
type Notice struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value,omitempty"`
	Lang  string `json:"lang,omitempty"`
}

// Reference cites an external document.
type Reference struct {
	Value    string `json:"value,omitempty"`
	Href     string `json:"href,omitempty"`
	Override *bool  `json:"override,omitempty"`
}

// PlainText is a reusable text block.
type PlainText struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Platform references a CPE platform.
type Platform struct {
	IDRef    string `json:"idref"`
	Override *bool  `json:"override,omitempty"`
}

// Model names a scoring model.
type Model struct {
	System string  `json:"system"`
	Param  []Param `json:"param,omitempty"`
}

// Param is a scoring model parameter.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IDRef references another item by id.
type IDRef struct {
	IDRef string `json:"idref"`
}

// Item holds the content shared by Group, Rule and Value.
type Item struct {
	ID              string `json:"id"`
	Abstract        *bool  `json:"abstract,omitempty"`
	ClusterID       string `json:"clusterId,omitempty"`
	Extends         string `json:"extends,omitempty"`
	Hidden          *bool  `json:"hidden,omitempty"`
	ProhibitChanges *bool  `json:"prohibitChanges,omitempty"`
	Lang            string `json:"lang,omitempty"`
	XMLID           string `json:"Id,omitempty"`

	Status      []Status    `json:"status,omitempty"`
	Version     *Version    `json:"version,omitempty"`
	Title       []Text      `json:"title,omitempty"`
	Description []Text      `json:"description,omitempty"`
	Warning     []Warning   `json:"warning,omitempty"`
	Question    []Text      `json:"question,omitempty"`
	Reference   []Reference `json:"reference,omitempty"`
}

// Selectable holds the content shared by Group and Rule.
type Selectable struct {
	Item
	Selected  *bool      `json:"selected,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	Rationale []Text     `json:"rationale,omitempty"`
	Platform  []Platform `json:"platform,omitempty"`
	Requires  []IDRef    `json:"requires,omitempty"`
	Conflicts []IDRef    `json:"conflicts,omitempty"`
}

// Group organizes rules, values and nested groups.
type Group struct {
	Selectable
	Value []Value `json:"Value,omitempty"`
	Group []Group `json:"Group,omitempty"`
	Rule  []Rule  `json:"Rule,omitempty"`
}

// Severity values.
const (
	SeverityUnknown = "unknown"
	SeverityInfo    = "info"
	SeverityLow     = "low"
	SeverityMedium  = "medium"
	SeverityHigh    = "high"
)

// Role values.
const (
	RoleFull      = "full"
	RoleUnscored  = "unscored"
	RoleUnchecked = "unchecked"
)

// Rule is a single checkable recommendation.
type Rule struct {
	Selectable
	Role         string        `json:"role,omitempty"`
	Severity     string        `json:"severity,omitempty"`
	Multiple     *bool         `json:"multiple,omitempty"`
	Ident        []Ident       `json:"ident,omitempty"`
	FixText      []FixText     `json:"fixtext,omitempty"`
	Fix          []Fix         `json:"fix,omitempty"`
	Check        []Check       `json:"check,omitempty"`
	ComplexCheck *ComplexCheck `json:"complexCheck,omitempty"`
}

// Ident is a long-term global identifier for a rule, such as a CVE.
type Ident struct {
	Value  string `json:"value"`
	System string `json:"system"`
}

// FixText describes remediation in prose.
type FixText struct {
	Text
	FixRef     string `json:"fixref,omitempty"`
	Reboot     *bool  `json:"reboot,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Disruption string `json:"disruption,omitempty"`
	Complexity string `json:"complexity,omitempty"`
}

// Fix is machine-applicable remediation content.
type Fix struct {
	Value      string        `json:"value,omitempty"`
	ID         string        `json:"id,omitempty"`
	Reboot     *bool         `json:"reboot,omitempty"`
	Strategy   string        `json:"strategy,omitempty"`
	Disruption string        `json:"disruption,omitempty"`
	Complexity string        `json:"complexity,omitempty"`
	System     string        `json:"system,omitempty"`
	Platform   string        `json:"platform,omitempty"`
	Instance   []FixInstance `json:"instance,omitempty"`
}

// FixInstance marks where an instance name is substituted into a fix.
type FixInstance struct {
	Context string `json:"context,omitempty"`
}

// Check references checking-engine content.
type Check struct {
	System          string            `json:"system"`
	Negate          *bool             `json:"negate,omitempty"`
	ID              string            `json:"id,omitempty"`
	Selector        string            `json:"selector,omitempty"`
	MultiCheck      *bool             `json:"multiCheck,omitempty"`
	CheckImport     []CheckImport     `json:"checkImport,omitempty"`
	CheckExport     []CheckExport     `json:"checkExport,omitempty"`
	CheckContentRef []CheckContentRef `json:"checkContentRef,omitempty"`
}

// CheckImport asks the checking engine for a value.
type CheckImport struct {
	ImportName  string `json:"importName"`
	ImportXPath string `json:"importXpath,omitempty"`
	Value       string `json:"value,omitempty"`
}

// CheckExport passes an XCCDF value to the checking engine.
type CheckExport struct {
	ValueID    string `json:"valueId"`
	ExportName string `json:"exportName"`
}

// CheckContentRef points at check content.
type CheckContentRef struct {
	Href string `json:"href"`
	Name string `json:"name,omitempty"`
}

// Complex check operators.
const (
	OperatorOR  = "OR"
	OperatorAND = "AND"
)

// ComplexCheck combines checks with a boolean operator.
type ComplexCheck struct {
	Operator     string         `json:"operator"`
	Negate       *bool          `json:"negate,omitempty"`
	Check        []Check        `json:"check,omitempty"`
	ComplexCheck []ComplexCheck `json:"complexCheck,omitempty"`
}

// Value is a named, tailorable parameter.
type Value struct {
	Item
	Type          string       `json:"type,omitempty"`
	Operator      string       `json:"operator,omitempty"`
	Interactive   *bool        `json:"interactive,omitempty"`
	InterfaceHint string       `json:"interfaceHint,omitempty"`
	Value         []SelString  `json:"value"`
	Default       []SelString  `json:"default,omitempty"`
	Match         []SelString  `json:"match,omitempty"`
	LowerBound    []SelNum     `json:"lowerBound,omitempty"`
	UpperBound    []SelNum     `json:"upperBound,omitempty"`
	Choices       []SelChoices `json:"choices,omitempty"`
	Source        []URIRef     `json:"source,omitempty"`
}

// SelString is a string keyed by an optional selector.
type SelString struct {
	Value    string `json:"value"`
	Selector string `json:"selector,omitempty"`
}

// SelNum is a number keyed by an optional selector.
type SelNum struct {
	Value    float64 `json:"value"`
	Selector string  `json:"selector,omitempty"`
}

// SelChoices lists permitted values.
type SelChoices struct {
	MustMatch *bool    `json:"mustMatch,omitempty"`
	Selector  string   `json:"selector,omitempty"`
	Choice    []string `json:"choice,omitempty"`
}

// URIRef references an external URI.
type URIRef struct {
	URI string `json:"uri"`
}

// Profile is a named tailoring of the benchmark.
type Profile struct {
	ID              string `json:"id"`
	ProhibitChanges *bool  `json:"prohibitChanges,omitempty"`
	Abstract        *bool  `json:"abstract,omitempty"`
	NoteTag         string `json:"noteTag,omitempty"`
	Extends         string `json:"extends,omitempty"`
	XMLID           string `json:"Id,omitempty"`
	Lang            string `json:"lang,omitempty"`

	Status      []Status      `json:"status,omitempty"`
	Version     *Version      `json:"version,omitempty"`
	Title       []Text        `json:"title"`
	Description []Text        `json:"description,omitempty"`
	Reference   []Reference   `json:"reference,omitempty"`
	Platform    []Platform    `json:"platform,omitempty"`
	Select      []Select      `json:"select,omitempty"`
	SetValue    []SetValue    `json:"setValue,omitempty"`
	RefineValue []RefineValue `json:"refineValue,omitempty"`
	RefineRule  []RefineRule  `json:"refineRule,omitempty"`
}

// Select toggles an item in a profile.
type Select struct {
	IDRef    string `json:"idref"`
	Selected bool   `json:"selected"`
	Remark   []Text `json:"remark,omitempty"`
}

// SetValue overrides a value.
type SetValue struct {
	IDRef string `json:"idref"`
	Value string `json:"value"`
}

// RefineValue picks a value selector.
type RefineValue struct {
	IDRef    string `json:"idref"`
	Selector string `json:"selector,omitempty"`
	Operator string `json:"operator,omitempty"`
	Remark   []Text `json:"remark,omitempty"`
}

// RefineRule adjusts rule properties within a profile.
type RefineRule struct {
	IDRef    string   `json:"idref"`
	Weight   *float64 `json:"weight,omitempty"`
	Selector string   `json:"selector,omitempty"`
	Severity string   `json:"severity,omitempty"`
	Role     string   `json:"role,omitempty"`
	Remark   []Text   `json:"remark,omitempty"`
}

// TestResult records one application of the benchmark to a target.
type TestResult struct {
	ID         string `json:"id"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime"`
	TestSystem string `json:"testSystem,omitempty"`
	Version    string `json:"version,omitempty"`
	XMLID      string `json:"Id,omitempty"`

	Benchmark     *BenchmarkRef `json:"benchmark,omitempty"`
	Title         []Text        `json:"title,omitempty"`
	Remark        []Text        `json:"remark,omitempty"`
	Organization  []string      `json:"organization,omitempty"`
	Identity      *Identity     `json:"identity,omitempty"`
	Profile       *IDRef        `json:"profile,omitempty"`
	Target        []string      `json:"target"`
	TargetAddress []string      `json:"targetAddress,omitempty"`
	TargetFacts   *TargetFacts  `json:"targetFacts,omitempty"`
	Platform      []Platform    `json:"platform,omitempty"`
	SetValue      []SetValue    `json:"setValue,omitempty"`
	RuleResult    []RuleResult  `json:"ruleResult,omitempty"`
	Score         []Score       `json:"score"`
}

// BenchmarkRef points a test result at its benchmark.
type BenchmarkRef struct {
	Href string `json:"href"`
	ID   string `json:"id,omitempty"`
}

// Identity is the account used to run the test.
type Identity struct {
	Value         string `json:"value"`
	Authenticated bool   `json:"authenticated"`
	Privileged    bool   `json:"privileged"`
}

// TargetFacts lists facts about the target system.
type TargetFacts struct {
	Fact []Fact `json:"fact,omitempty"`
}

// Fact is a named fact about the target.
type Fact struct {
	Value string `json:"value"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
}

// Score is a computed benchmark score.
type Score struct {
	Value   float64  `json:"value"`
	System  string   `json:"system,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// Result values for a rule result.
const (
	ResultPass          = "pass"
	ResultFail          = "fail"
	ResultError         = "error"
	ResultUnknown       = "unknown"
	ResultNotApplicable = "notapplicable"
	ResultNotChecked    = "notchecked"
	ResultNotSelected   = "notselected"
	ResultInformational = "informational"
	ResultFixed         = "fixed"
)

// Message severities.
const (
	MessageError   = "error"
	MessageWarning = "warning"
	MessageInfo    = "info"
)

// RuleResult is the outcome of one rule within a test result.
type RuleResult struct {
	IDRef        string           `json:"idref"`
	Role         string           `json:"role,omitempty"`
	Severity     string           `json:"severity,omitempty"`
	Time         string           `json:"time,omitempty"`
	Version      string           `json:"version,omitempty"`
	Weight       *float64         `json:"weight,omitempty"`
	Result       string           `json:"result"`
	Override     []Override       `json:"override,omitempty"`
	Ident        []Ident          `json:"ident,omitempty"`
	Message      []Message        `json:"message,omitempty"`
	Instance     []InstanceResult `json:"instance,omitempty"`
	Fix          []Fix            `json:"fix,omitempty"`
	Check        []Check          `json:"check,omitempty"`
	ComplexCheck *ComplexCheck    `json:"complexCheck,omitempty"`
}

// Override is an audit record of a manually changed result.
type Override struct {
	Time      string `json:"time"`
	Authority string `json:"authority"`
	OldResult string `json:"oldResult"`
	NewResult string `json:"newResult"`
	Remark    Text   `json:"remark"`
}

// Message is diagnostic output from a checking engine.
type Message struct {
	Value    string `json:"value"`
	Severity string `json:"severity"`
}

// InstanceResult names the target instance a result applies to.
type InstanceResult struct {
	Value         string `json:"value"`
	Context       string `json:"context,omitempty"`
	ParentContext string `json:"parentContext,omitempty"`
}
