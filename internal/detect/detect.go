// Package detect sniffs input to determine its document format.
package detect

import (
	"bytes"
	"encoding/xml"

	"github.com/goccy/go-json"

	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown   Format = iota
	SARIF            // SARIF 2.1.0 JSON log
	XCCDF            // XCCDF XML document with a Benchmark root
	Benchmark        // JSON-encoded XCCDF benchmark object model
)

func (f Format) String() string {
	switch f {
	case SARIF:
		return "sarif"
	case XCCDF:
		return "xccdf"
	case Benchmark:
		return "benchmark"
	default:
		return "unknown"
	}
}

// Sniff examines input to determine its format.
func Sniff(data []byte) Format {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '{':
		if sarif.IsSARIF(data) {
			return SARIF
		}
		if isBenchmarkJSON(data) {
			return Benchmark
		}
	case '<':
		if rootElement(data) == "Benchmark" {
			return XCCDF
		}
	}
	return Unknown
}

func isBenchmarkJSON(data []byte) bool {
	var probe struct {
		ID      string          `json:"id"`
		Status  json.RawMessage `json:"status"`
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.ID != "" && len(probe.Status) > 0 && len(probe.Version) > 0
}

// rootElement returns the local name of the first element, or "" when the
// prolog does not parse.
func rootElement(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}
