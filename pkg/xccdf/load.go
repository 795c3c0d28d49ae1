package xccdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// LoadFile reads a JSON-encoded benchmark from disk.
func LoadFile(path string) (*Benchmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read benchmark file: %w", err)
	}
	return Parse(data)
}

// Load reads a JSON-encoded benchmark from r.
func Load(r io.Reader) (*Benchmark, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read benchmark: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON benchmark using the field names of the XCCDF
// object model (id, status, version, Rule, TestResult, ...). Unknown fields
// are rejected so misspelled keys do not silently drop content.
func Parse(data []byte) (*Benchmark, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var b Benchmark
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode benchmark: %w", err)
	}
	if rest := bytes.TrimSpace(data[dec.InputOffset():]); len(rest) > 0 {
		return nil, fmt.Errorf("decode benchmark: trailing data after JSON value")
	}
	return &b, nil
}
