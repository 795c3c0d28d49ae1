// Package sarif reads, builds and summarizes SARIF 2.1.0 logs.
package sarif

// Version is the only SARIF version this package reads and writes.
const Version = "2.1.0"

// SchemaURI is written as $schema by the Builder.
const SchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"

// Result levels.
const (
	LevelNone    = "none"
	LevelNote    = "note"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Result kinds. A result without a level or kind is a failing warning.
const (
	KindNotApplicable = "notApplicable"
	KindPass          = "pass"
	KindFail          = "fail"
	KindReview        = "review"
	KindOpen          = "open"
	KindInformational = "informational"
)

// Properties is a SARIF property bag.
type Properties map[string]any

// Document represents a SARIF 2.1.0 log.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-v2.1.0.html
type Document struct {
	Version                  string       `json:"version"`
	Schema                   string       `json:"$schema,omitempty"`
	Runs                     []Run        `json:"runs"`
	InlineExternalProperties []Properties `json:"inlineExternalProperties,omitempty"`
	Properties               Properties   `json:"properties,omitempty"`
}

// Run represents a single analysis run.
type Run struct {
	Tool               Tool                        `json:"tool"`
	Invocations        []Invocation                `json:"invocations,omitempty"`
	OriginalURIBaseIDs map[string]ArtifactLocation `json:"originalUriBaseIds,omitempty"`
	Artifacts          []Artifact                  `json:"artifacts,omitempty"`
	LogicalLocations   []LogicalLocation           `json:"logicalLocations,omitempty"`
	Graphs             []Properties                `json:"graphs,omitempty"`
	Results            []Result                    `json:"results"`
	AutomationDetails  *AutomationDetails          `json:"automationDetails,omitempty"`
	Taxonomies         []ToolComponent             `json:"taxonomies,omitempty"`
	Properties         Properties                  `json:"properties,omitempty"`
}

// Tool identifies the analysis tool that produced the results.
type Tool struct {
	Driver     ToolComponent   `json:"driver"`
	Extensions []ToolComponent `json:"extensions,omitempty"`
}

// ToolComponent describes the driver or an extension, and the rules it
// can report.
type ToolComponent struct {
	Name             string                `json:"name"`
	Version          string                `json:"version,omitempty"`
	SemanticVersion  string                `json:"semanticVersion,omitempty"`
	InformationURI   string                `json:"informationUri,omitempty"`
	Organization     string                `json:"organization,omitempty"`
	ShortDescription *MultiformatMessage   `json:"shortDescription,omitempty"`
	FullDescription  *MultiformatMessage   `json:"fullDescription,omitempty"`
	Rules            []ReportingDescriptor `json:"rules,omitempty"`
	Notifications    []ReportingDescriptor `json:"notifications,omitempty"`
	Properties       Properties            `json:"properties,omitempty"`
}

// ReportingDescriptor describes a rule or notification.
type ReportingDescriptor struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name,omitempty"`
	ShortDescription     *MultiformatMessage     `json:"shortDescription,omitempty"`
	FullDescription      *MultiformatMessage     `json:"fullDescription,omitempty"`
	Help                 *MultiformatMessage     `json:"help,omitempty"`
	HelpURI              string                  `json:"helpUri,omitempty"`
	DefaultConfiguration *ReportingConfiguration `json:"defaultConfiguration,omitempty"`
	Properties           Properties              `json:"properties,omitempty"`
}

// ReportingConfiguration holds a rule's default level.
type ReportingConfiguration struct {
	Enabled *bool   `json:"enabled,omitempty"`
	Level   string  `json:"level,omitempty"`
	Rank    float64 `json:"rank,omitempty"`
}

// MultiformatMessage is a message with plain text and optional markdown.
type MultiformatMessage struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// Result represents a single issue found by the tool.
type Result struct {
	RuleID              string            `json:"ruleId,omitempty"`
	RuleIndex           *int              `json:"ruleIndex,omitempty"`
	Rule                *RuleReference    `json:"rule,omitempty"`
	Kind                string            `json:"kind,omitempty"`
	Level               string            `json:"level,omitempty"`
	Message             Message           `json:"message"`
	Locations           []Location        `json:"locations,omitempty"`
	Fingerprints        map[string]string `json:"fingerprints,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
	CodeFlows           []CodeFlow        `json:"codeFlows,omitempty"`
	Suppressions        []Suppression     `json:"suppressions,omitempty"`
	BaselineState       string            `json:"baselineState,omitempty"`
	Properties          Properties        `json:"properties,omitempty"`
}

// RuleReference points at a rule by id or by index into a tool component.
type RuleReference struct {
	ID    string `json:"id,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// Message contains the issue description.
type Message struct {
	Text      string   `json:"text,omitempty"`
	Markdown  string   `json:"markdown,omitempty"`
	ID        string   `json:"id,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
}

// Location identifies where the issue was found.
type Location struct {
	PhysicalLocation PhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []LogicalLocation `json:"logicalLocations,omitempty"`
	Message          *Message          `json:"message,omitempty"`
}

// PhysicalLocation pinpoints the file and region.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

// ArtifactLocation identifies the file.
type ArtifactLocation struct {
	URI       string `json:"uri,omitempty"`
	URIBaseID string `json:"uriBaseId,omitempty"`
	Index     *int   `json:"index,omitempty"`
}

// Region identifies the specific location within the file.
type Region struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// LogicalLocation names a function, type or namespace.
type LogicalLocation struct {
	Name               string `json:"name,omitempty"`
	FullyQualifiedName string `json:"fullyQualifiedName,omitempty"`
	Kind               string `json:"kind,omitempty"`
}

// Artifact describes a file the run analyzed.
type Artifact struct {
	Location *ArtifactLocation `json:"location,omitempty"`
	Length   *int              `json:"length,omitempty"`
	MimeType string            `json:"mimeType,omitempty"`
	Roles    []string          `json:"roles,omitempty"`
}

// Invocation records how the tool ran.
type Invocation struct {
	ExecutionSuccessful bool              `json:"executionSuccessful"`
	CommandLine         string            `json:"commandLine,omitempty"`
	StartTimeUTC        string            `json:"startTimeUtc,omitempty"`
	EndTimeUTC          string            `json:"endTimeUtc,omitempty"`
	ExitCode            *int              `json:"exitCode,omitempty"`
	Machine             string            `json:"machine,omitempty"`
	WorkingDirectory    *ArtifactLocation `json:"workingDirectory,omitempty"`
}

// AutomationDetails identifies the run within a series.
type AutomationDetails struct {
	ID   string `json:"id,omitempty"`
	GUID string `json:"guid,omitempty"`
}

// CodeFlow is an execution path leading to a result.
type CodeFlow struct {
	Message     *Message     `json:"message,omitempty"`
	ThreadFlows []ThreadFlow `json:"threadFlows"`
}

// ThreadFlow is a sequence of locations within one thread.
type ThreadFlow struct {
	ID        string               `json:"id,omitempty"`
	Locations []ThreadFlowLocation `json:"locations"`
}

// ThreadFlowLocation is one step of a ThreadFlow.
type ThreadFlowLocation struct {
	Location *Location `json:"location,omitempty"`
}

// Suppression records that a result was suppressed and why.
type Suppression struct {
	Kind          string `json:"kind"` // "inSource" or "external"
	Status        string `json:"status,omitempty"`
	Justification string `json:"justification,omitempty"`
}

// Suppressed reports whether r has a suppression that is in effect.
// Suppressions under review or rejected do not count.
func (r Result) Suppressed() bool {
	for _, s := range r.Suppressions {
		if s.Status == "" || s.Status == "accepted" {
			return true
		}
	}
	return false
}

// EffectiveLevel returns the result's level, falling back to the rule's
// default configuration and then to "warning". Results whose kind is not
// "fail" have level "none".
func (r Result) EffectiveLevel(rule *ReportingDescriptor) string {
	if r.Level != "" {
		return r.Level
	}
	if r.Kind != "" && r.Kind != KindFail {
		return LevelNone
	}
	if rule != nil && rule.DefaultConfiguration != nil && rule.DefaultConfiguration.Level != "" {
		return rule.DefaultConfiguration.Level
	}
	return LevelWarning
}

// File returns the URI of the result's first location, or "".
func (r Result) File() string {
	if len(r.Locations) == 0 {
		return ""
	}
	return NormalizePath(r.Locations[0].PhysicalLocation.ArtifactLocation.URI)
}
