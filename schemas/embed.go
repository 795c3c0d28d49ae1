// Package schemas bundles the SARIF 2.1.0 JSON Schema and the XCCDF 1.2 XSD
// together with the schemas the XSD imports.
package schemas

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// SARIFURL is the canonical location of the SARIF 2.1.0 schema. The bundled
// copy declares it as its $id.
const SARIFURL = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// XCCDFNamespace is the XCCDF 1.2 target namespace.
const XCCDFNamespace = "http://checklists.nist.gov/xccdf/1.2"

// XCCDFMain is the file name of the XCCDF schema within the bundled set.
const XCCDFMain = "xccdf_1.2.xsd"

const xccdfDir = "xccdf"

//go:embed sarif-schema-2.1.0.json
var SARIF []byte

//go:embed xccdf/xccdf_1.2.xsd
var XCCDF []byte

//go:embed xccdf/*.xsd
var xccdfFS embed.FS

// XCCDFFiles returns the XCCDF schema set: the main XSD plus the xml, Dublin
// Core, CPE and XML Signature schemas it imports by relative location.
func XCCDFFiles() fs.FS {
	sub, err := fs.Sub(xccdfFS, xccdfDir)
	if err != nil {
		panic(err)
	}
	return sub
}

var xccdfPath = sync.OnceValues(func() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return Materialize(filepath.Join(dir, "sarif2xccdf"))
})

// XCCDFPath returns the path of the bundled XSD on disk, writing the schema
// set to the user cache directory on first use.
func XCCDFPath() (string, error) {
	return xccdfPath()
}

// Materialize writes the bundled XSD set into a content-addressed directory
// under dir and returns the path of the main XSD. An existing directory with
// the same name is reused.
func Materialize(dir string) (string, error) {
	files, err := fs.ReadDir(xccdfFS, xccdfDir)
	if err != nil {
		return "", fmt.Errorf("list schema files: %w", err)
	}

	h := sha256.New()
	for _, f := range files {
		data, err := xccdfFS.ReadFile(path.Join(xccdfDir, f.Name()))
		if err != nil {
			return "", fmt.Errorf("read schema file: %w", err)
		}
		fmt.Fprintf(h, "%s\x00%d\x00", f.Name(), len(data))
		h.Write(data)
	}
	target := filepath.Join(dir, "xccdf_1.2-"+hex.EncodeToString(h.Sum(nil)[:6]))
	mainPath := filepath.Join(target, XCCDFMain)

	if _, err := os.Stat(mainPath); err == nil {
		return mainPath, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create schema dir: %w", err)
	}
	tmp, err := os.MkdirTemp(dir, ".xccdf-*")
	if err != nil {
		return "", fmt.Errorf("create schema dir: %w", err)
	}
	for _, f := range files {
		data, _ := xccdfFS.ReadFile(path.Join(xccdfDir, f.Name()))
		if err := os.WriteFile(filepath.Join(tmp, f.Name()), data, 0o644); err != nil {
			os.RemoveAll(tmp)
			return "", fmt.Errorf("write schema file: %w", err)
		}
	}
	if err := os.Rename(tmp, target); err != nil {
		os.RemoveAll(tmp)
		// Another process may have installed the same set first.
		if _, statErr := os.Stat(mainPath); statErr == nil {
			return mainPath, nil
		}
		return "", fmt.Errorf("install schema files: %w", err)
	}
	return mainPath, nil
}
