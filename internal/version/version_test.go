package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.3"

	assert.Equal(t, "sarif2xccdf version 1.2.3\nCommit: unknown\nBuilt: unknown\n", String())
}
