// Package validate checks SARIF logs against the SARIF 2.1.0 JSON Schema and
// XCCDF documents against the XCCDF 1.2 XSD, reporting both in one shape.
package validate

// FallbackMessage is reported when an engine signals invalidity without
// any detail.
const FallbackMessage = "Schema validation failed"

// Result is the outcome of a validation. Errors is nil exactly when Valid
// is true; otherwise it holds at least one non-empty message.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func valid() Result {
	return Result{Valid: true}
}

// invalid builds a failing result, dropping empty messages and falling back
// to FallbackMessage when none remain.
func invalid(msgs ...string) Result {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = append(out, FallbackMessage)
	}
	return Result{Valid: false, Errors: out}
}
