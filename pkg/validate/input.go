package validate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/dkoosis/sarif2xccdf/pkg/xccdf"
)

// SARIFInput is a SARIF log to validate: a file path, raw JSON bytes, or an
// in-memory value. Build one with SARIFFile, SARIFBytes or SARIFValue.
type SARIFInput interface {
	sarifInput()
	kind() string
}

type sarifFile string
type sarifBytes []byte
type sarifValue struct{ v any }

func (sarifFile) sarifInput()  {}
func (sarifBytes) sarifInput() {}
func (sarifValue) sarifInput() {}

func (sarifFile) kind() string  { return "file" }
func (sarifBytes) kind() string { return "bytes" }
func (sarifValue) kind() string { return "value" }

// SARIFFile reads the log from path.
func SARIFFile(path string) SARIFInput { return sarifFile(path) }

// SARIFBytes decodes the log from raw JSON.
func SARIFBytes(data []byte) SARIFInput { return sarifBytes(data) }

// SARIFValue validates an already decoded JSON value, or any Go value that
// marshals to JSON such as a *sarif.Document.
func SARIFValue(v any) SARIFInput { return sarifValue{v: v} }

// resolveSARIF produces the generic JSON form the schema engine expects:
// maps, slices, strings, bools, nil and json.Number.
func resolveSARIF(in SARIFInput) (any, error) {
	switch in := in.(type) {
	case sarifFile:
		data, err := os.ReadFile(string(in))
		if err != nil {
			return nil, fmt.Errorf("read sarif file: %w", err)
		}
		return decodeJSON(data)
	case sarifBytes:
		return decodeJSON(in)
	case sarifValue:
		data, err := json.Marshal(in.v)
		if err != nil {
			return nil, fmt.Errorf("encode sarif value: %w", err)
		}
		return decodeJSON(data)
	case nil:
		return nil, errors.New("no sarif input")
	default:
		return nil, fmt.Errorf("unsupported sarif input %T", in)
	}
}

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("parse sarif: empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("parse sarif: %w", err)
	}
	if rest := bytes.TrimSpace(data[dec.InputOffset():]); len(rest) > 0 {
		return nil, errors.New("parse sarif: trailing data after JSON value")
	}
	return v, nil
}

// XCCDFInput is an XCCDF document to validate: a structured benchmark, an
// XML string, or a file path. Build one with XCCDFBenchmark, XCCDFDocument,
// XCCDFFile or XCCDFString.
type XCCDFInput interface {
	xccdfInput()
	kind() string
}

type xccdfBenchmark struct{ b *xccdf.Benchmark }
type xccdfDocument string
type xccdfFile string

func (xccdfBenchmark) xccdfInput() {}
func (xccdfDocument) xccdfInput()  {}
func (xccdfFile) xccdfInput()      {}

func (xccdfBenchmark) kind() string { return "benchmark" }
func (xccdfDocument) kind() string  { return "document" }
func (xccdfFile) kind() string      { return "file" }

// XCCDFBenchmark serializes b before validating it.
func XCCDFBenchmark(b *xccdf.Benchmark) XCCDFInput { return xccdfBenchmark{b: b} }

// XCCDFDocument validates literal XML.
func XCCDFDocument(xml string) XCCDFInput { return xccdfDocument(xml) }

// XCCDFFile reads the XML from path.
func XCCDFFile(path string) XCCDFInput { return xccdfFile(path) }

// XCCDFString treats s as XML when, after trimming leading whitespace, it
// starts with '<', and as a file path otherwise.
func XCCDFString(s string) XCCDFInput {
	if strings.HasPrefix(strings.TrimSpace(s), "<") {
		return xccdfDocument(s)
	}
	return xccdfFile(s)
}

func resolveXCCDF(in XCCDFInput) (string, error) {
	switch in := in.(type) {
	case xccdfBenchmark:
		return xccdf.Serialize(in.b)
	case xccdfDocument:
		return string(in), nil
	case xccdfFile:
		data, err := os.ReadFile(string(in))
		if err != nil {
			return "", fmt.Errorf("read xccdf file: %w", err)
		}
		return string(data), nil
	case nil:
		return "", errors.New("no xccdf input")
	default:
		return "", fmt.Errorf("unsupported xccdf input %T", in)
	}
}
