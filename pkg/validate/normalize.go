package validate

import (
	"errors"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dkoosis/sarif2xccdf/pkg/xmllint"
)

// normalizeSchemaErrors flattens the engine's cause tree to its leaves, in
// engine order. Each leaf becomes "<instance-path> <message>", or just the
// message for violations at the document root.
func normalizeSchemaErrors(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		if err == nil {
			return []string{FallbackMessage}
		}
		return invalid(err.Error()).Errors
	}

	var out []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, formatLeaf(e))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	// The root only says which schema failed; its causes carry the detail.
	for _, c := range ve.Causes {
		walk(c)
	}
	return invalid(out...).Errors
}

func formatLeaf(e *jsonschema.ValidationError) string {
	if e.Message == "" {
		return ""
	}
	if e.InstanceLocation == "" {
		return e.Message
	}
	return e.InstanceLocation + " " + e.Message
}

// normalizeXSDErrors combines an engine failure with the engine's reported
// messages. Empty strings are dropped.
func normalizeXSDErrors(err error, res *xmllint.Result) []string {
	var msgs []string
	if err != nil {
		msgs = append(msgs, err.Error())
	}
	if res != nil {
		for _, m := range res.Messages {
			msgs = append(msgs, m.String())
		}
	}
	return invalid(msgs...).Errors
}
