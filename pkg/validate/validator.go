package validate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dkoosis/sarif2xccdf/pkg/xmllint"
	"github.com/dkoosis/sarif2xccdf/schemas"
)

// JSONSchema is the part of a compiled JSON Schema the SARIF validator uses.
type JSONSchema interface {
	Validate(v any) error
}

// XSDEngine checks an XML document against the XSD at xsdPath.
type XSDEngine interface {
	Validate(ctx context.Context, xmlText, xsdPath string) (*xmllint.Result, error)
}

// Validator validates SARIF logs and XCCDF documents. It is safe for
// concurrent use.
type Validator struct {
	cache   *SchemaCache
	engine  XSDEngine
	xsdPath string
	log     *logrus.Entry
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger for debug output.
func WithLogger(log *logrus.Entry) Option {
	return func(v *Validator) { v.log = log }
}

// WithSchemaCache sets the SARIF schema cache. The default is DefaultCache.
func WithSchemaCache(c *SchemaCache) Option {
	return func(v *Validator) { v.cache = c }
}

// WithXSDEngine sets the engine used for XCCDF. The default runs xmllint
// from PATH.
func WithXSDEngine(e XSDEngine) Option {
	return func(v *Validator) { v.engine = e }
}

// WithXCCDFSchema sets the XSD file for XCCDF. The default is the bundled
// XCCDF 1.2 schema written to the user cache directory.
func WithXCCDFSchema(path string) Option {
	return func(v *Validator) { v.xsdPath = path }
}

// New returns a Validator with the given options applied.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = logrus.NewEntry(logrus.StandardLogger())
	}
	if v.cache == nil {
		v.cache = DefaultCache()
	}
	if v.engine == nil {
		v.engine = &xmllint.Runner{Logger: v.log}
	}
	return v
}

var defaultValidator = New()

// ValidateSARIF validates in with the process-wide schema cache.
func ValidateSARIF(ctx context.Context, in SARIFInput) Result {
	return defaultValidator.SARIF(ctx, in)
}

// ValidateXCCDF validates in with xmllint and the bundled XCCDF 1.2 schema.
func ValidateXCCDF(ctx context.Context, in XCCDFInput) Result {
	return defaultValidator.XCCDF(ctx, in)
}

// SARIF validates a SARIF log against the SARIF 2.1.0 JSON Schema. Input,
// compilation and engine failures are reported in the Result.
func (v *Validator) SARIF(ctx context.Context, in SARIFInput) (res Result) {
	log := v.log.WithField("format", "sarif")
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Debug("sarif validation panicked")
			res = invalid(fmt.Sprintf("sarif validation failed: %v", r))
		}
	}()

	if in != nil {
		log = log.WithField("input", in.kind())
	}
	log.Debug("resolving input")
	doc, err := resolveSARIF(in)
	if err != nil {
		return invalid(err.Error())
	}

	schema, err := v.cache.Get(ctx)
	if err != nil {
		return invalid(err.Error())
	}

	res = checkSchema(schema, doc)
	log.WithField("errors", len(res.Errors)).Debug("sarif validated")
	return res
}

func checkSchema(schema JSONSchema, doc any) Result {
	if err := schema.Validate(doc); err != nil {
		return Result{Valid: false, Errors: normalizeSchemaErrors(err)}
	}
	return valid()
}

// XCCDF validates an XCCDF document against the XCCDF 1.2 XSD. A structured
// benchmark is serialized first; a missing required field is reported as
// the only error.
func (v *Validator) XCCDF(ctx context.Context, in XCCDFInput) (res Result) {
	log := v.log.WithField("format", "xccdf")
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Debug("xccdf validation panicked")
			res = invalid(fmt.Sprintf("xccdf validation failed: %v", r))
		}
	}()

	if in != nil {
		log = log.WithField("input", in.kind())
	}
	log.Debug("resolving input")
	doc, err := resolveXCCDF(in)
	if err != nil {
		return invalid(err.Error())
	}

	xsd, err := v.schemaPath()
	if err != nil {
		return invalid(err.Error())
	}

	log.WithField("schema", xsd).Debug("running xsd engine")
	out, err := v.engine.Validate(ctx, doc, xsd)
	if err == nil && out != nil && out.Valid {
		log.Debug("xccdf validated")
		return valid()
	}

	res = Result{Valid: false, Errors: normalizeXSDErrors(err, out)}
	log.WithField("errors", len(res.Errors)).Debug("xccdf validated")
	return res
}

func (v *Validator) schemaPath() (string, error) {
	if v.xsdPath != "" {
		return v.xsdPath, nil
	}
	path, err := schemas.XCCDFPath()
	if err != nil {
		return "", fmt.Errorf("prepare xccdf schema: %w", err)
	}
	return path, nil
}
