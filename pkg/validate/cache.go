package validate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"

	"github.com/dkoosis/sarif2xccdf/schemas"
)

// SchemaCache compiles the SARIF JSON Schema at most once and shares the
// result. The first Get starts compilation; concurrent callers wait on the
// same in-flight call. A failed compilation is remembered and returned to
// every later caller until Reset.
type SchemaCache struct {
	path string
	log  *logrus.Entry

	mu       sync.Mutex
	call     *compileCall
	compiles atomic.Int64
}

type compileCall struct {
	done   chan struct{}
	schema *jsonschema.Schema
	err    error
}

// NewSchemaCache returns a cache for the schema at path, or for the bundled
// SARIF 2.1.0 schema when path is empty. A nil log uses the standard logger.
func NewSchemaCache(path string, log *logrus.Entry) *SchemaCache {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &SchemaCache{path: path, log: log}
}

var defaultCache = NewSchemaCache("", nil)

// DefaultCache returns the process-wide cache used by ValidateSARIF.
func DefaultCache() *SchemaCache {
	return defaultCache
}

// Get returns the compiled schema, compiling it on first use. Cancelling ctx
// stops this caller from waiting but does not abort the shared compilation.
func (c *SchemaCache) Get(ctx context.Context) (*jsonschema.Schema, error) {
	c.mu.Lock()
	call := c.call
	if call == nil {
		call = &compileCall{done: make(chan struct{})}
		c.call = call
		c.compiles.Add(1)
		go func() {
			defer close(call.done)
			call.schema, call.err = c.compile()
		}()
	}
	c.mu.Unlock()

	select {
	case <-call.done:
		return call.schema, call.err
	default:
	}

	select {
	case <-call.done:
		return call.schema, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Compiles reports how many compilations this cache has started.
func (c *SchemaCache) Compiles() int64 {
	return c.compiles.Load()
}

// Reset forgets the compiled schema or remembered failure.
func (c *SchemaCache) Reset() {
	c.mu.Lock()
	c.call = nil
	c.mu.Unlock()
}

func (c *SchemaCache) compile() (s *jsonschema.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compile sarif schema: %v", r)
		}
	}()

	start := time.Now()
	log := c.log.WithField("schema", c.source())
	log.Debug("compiling sarif schema")

	data, url, err := c.load()
	if err != nil {
		return nil, err
	}

	comp := jsonschema.NewCompiler()
	comp.Draft = jsonschema.Draft7
	comp.LoadURL = func(s string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("remote schema reference not allowed: %s", s)
	}
	if err := comp.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parse sarif schema: %w", err)
	}
	s, err = comp.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile sarif schema: %w", err)
	}

	log.WithField("duration", time.Since(start)).Debug("compiled sarif schema")
	return s, nil
}

func (c *SchemaCache) load() ([]byte, string, error) {
	if c.path == "" {
		return schemas.SARIF, schemas.SARIFURL, nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, "", fmt.Errorf("read sarif schema: %w", err)
	}
	abs, err := filepath.Abs(c.path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve sarif schema path: %w", err)
	}
	return data, abs, nil
}

func (c *SchemaCache) source() string {
	if c.path == "" {
		return "embedded"
	}
	return c.path
}
