package schemas

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSARIFSchema_IsDraft07WithID(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(SARIF, &doc))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, SARIFURL, doc["$id"])
	assert.ElementsMatch(t, []any{"version", "runs"}, doc["required"])
}

func TestSARIFSchema_DefinesFullObjectGraph(t *testing.T) {
	var doc struct {
		Definitions map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(SARIF, &doc))

	for _, name := range []string{
		"attachment", "conversion", "edgeTraversal", "externalPropertyFileReferences",
		"graphTraversal", "rectangle", "resultProvenance", "specialLocations",
		"translationMetadata", "webRequest", "webResponse",
	} {
		assert.Contains(t, doc.Definitions, name)
	}

	result := doc.Definitions["result"].Properties
	for _, prop := range []string{"provenance", "taxa", "attachments", "webRequest", "webResponse", "graphTraversals", "fixes"} {
		assert.Contains(t, result, prop)
	}

	// Every $ref must resolve inside the document.
	refs := regexp.MustCompile(`"#/definitions/([A-Za-z]+)"`).FindAllSubmatch(SARIF, -1)
	require.NotEmpty(t, refs)
	for _, m := range refs {
		assert.Contains(t, doc.Definitions, string(m[1]))
	}
}

func TestXCCDFSchema_TargetsNamespace(t *testing.T) {
	assert.True(t, bytes.Contains(XCCDF, []byte(`targetNamespace="`+XCCDFNamespace+`"`)))
	assert.True(t, bytes.Contains(XCCDF, []byte(`<xsd:element name="Benchmark">`)))

	mainXSD, err := fs.ReadFile(XCCDFFiles(), XCCDFMain)
	require.NoError(t, err)
	assert.Equal(t, XCCDF, mainXSD)
}

func TestXCCDFSchema_ImportsResolveLocally(t *testing.T) {
	files := XCCDFFiles()
	loc := regexp.MustCompile(`schemaLocation="([^"]+)"`)

	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(files, path)
		if err != nil {
			return err
		}
		for _, m := range loc.FindAllSubmatch(data, -1) {
			target := string(m[1])
			assert.NotContains(t, target, "://", "%s imports a remote schema", path)
			_, statErr := fs.Stat(files, target)
			assert.NoError(t, statErr, "%s imports missing %s", path, target)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMaterialize_WritesSetOnceAndReuses(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	path, err := Materialize(dir)
	require.NoError(t, err)
	assert.Equal(t, XCCDFMain, filepath.Base(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, XCCDF, got)

	want, err := fs.ReadDir(XCCDFFiles(), ".")
	require.NoError(t, err)
	written, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, written, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name(), written[i].Name())
	}

	again, err := Materialize(dir)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp dirs must not be left behind")
}
