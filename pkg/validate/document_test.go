package validate

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
)

func TestValidator_BuiltSARIFDocument(t *testing.T) {
	b := sarif.NewBuilder("gosec", "2.18.0").
		AddRule("G101", "Hardcoded credentials", sarif.LevelError).
		AddResult("G101", sarif.LevelError, "password in source", "auth.go", 12, 3).
		AddResult("G101", "", "token in test", "auth_test.go", 0, 0).
		Suppress("inSource", "test fixture")

	v := newSARIFValidator()

	r := v.SARIF(context.Background(), SARIFValue(b.Document()))
	assert.True(t, r.Valid, "errors: %v", r.Errors)

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)
	r = v.SARIF(context.Background(), SARIFBytes(buf.Bytes()))
	assert.True(t, r.Valid, "errors: %v", r.Errors)
}

func TestValidator_TypedDocumentWithBadLevel(t *testing.T) {
	doc := sarif.NewBuilder("lint", "").
		AddResult("r1", "fatal", "bad level", "a.go", 1, 1).
		Document()

	r := newSARIFValidator().SARIF(context.Background(), SARIFValue(doc))
	assertShape(t, r)
	assert.False(t, r.Valid)
	assert.Contains(t, r.Errors[0], "/runs/0/results/0/level")
}
