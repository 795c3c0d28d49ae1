package validate

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sarif2xccdf/schemas"
)

func TestSchemaCache_CompilesOnceUnderConcurrency(t *testing.T) {
	c := NewSchemaCache("", nil)

	const callers = 16
	got := make([]*jsonschema.Schema, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.Get(context.Background())
			assert.NoError(t, err)
			got[i] = s
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, s := range got[1:] {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, int64(1), c.Compiles())
}

func TestSchemaCache_FailureIsRemembered(t *testing.T) {
	c := NewSchemaCache(filepath.Join(t.TempDir(), "missing.json"), nil)

	_, err1 := c.Get(context.Background())
	require.Error(t, err1)
	assert.Contains(t, err1.Error(), "read sarif schema")

	_, err2 := c.Get(context.Background())
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
	assert.Equal(t, int64(1), c.Compiles())
}

func TestSchemaCache_ResetRecompiles(t *testing.T) {
	c := NewSchemaCache("", nil)
	first, err := c.Get(context.Background())
	require.NoError(t, err)

	c.Reset()
	second, err := c.Get(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), c.Compiles())
}

func TestSchemaCache_ResolvedIgnoresCancelledContext(t *testing.T) {
	c := NewSchemaCache("", nil)
	want, err := c.Get(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestSchemaCache_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sarif.json")
	require.NoError(t, os.WriteFile(path, schemas.SARIF, 0o600))

	s, err := NewSchemaCache(path, nil).Get(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Validate(map[string]any{"version": "2.1.0", "runs": []any{}}))
}

func TestSchemaCache_InvalidSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": 12}`), 0o600))

	_, err := NewSchemaCache(path, nil).Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sarif schema")
}
