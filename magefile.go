//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/dkoosis/sarif2xccdf"
	binPath    = "bin/sarif2xccdf"
)

// Default target - build the binary
var Default = Build

// Build builds the sarif2xccdf binary with version metadata.
func Build() error {
	version := gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*")
	commit := gitOutput("unknown", "rev-parse", "--short", "HEAD")
	date := time.Now().UTC().Format(time.RFC3339)

	ldflags := fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, version, commit, date)

	fmt.Println("Building sarif2xccdf...")
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, "./cmd/sarif2xccdf"); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Printf("Built: %s\n", binPath)
	return nil
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// QA runs formatting, vet, linters and tests.
func QA() {
	mg.SerialDeps(Lint.All, Test.All, Build)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters
func (Lint) All() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Staticcheck, Lint.Golangci)
}

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need formatting:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Staticcheck runs staticcheck when installed
func (Lint) Staticcheck() error {
	return optional("staticcheck", "go install honnef.co/go/tools/cmd/staticcheck@latest", "./...")
}

// Golangci runs golangci-lint when installed
func (Lint) Golangci() error {
	return optional("golangci-lint", "go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Scan runs gosec over the module and converts its SARIF log into a
// validated XCCDF benchmark at bin/gosec.xml.
func Scan() error {
	mg.Deps(Build)

	const log = "bin/gosec.sarif"
	if err := os.Remove(log); err != nil && !os.IsNotExist(err) {
		return err
	}
	err := optional("gosec", "go install github.com/securego/gosec/v2/cmd/gosec@latest",
		"-quiet", "-fmt", "sarif", "-out", log, "./...")
	if _, statErr := os.Stat(log); statErr != nil {
		// gosec is missing or failed before writing its log.
		return err
	}
	if err != nil {
		// Findings make gosec exit non-zero; the log is still complete.
		fmt.Printf("gosec reported findings: %v\n", err)
	}
	return sh.RunV(binPath, "convert", log, "-o", "bin/gosec.xml", "--validate", "--namespace", "com.github.dkoosis")
}

// optional runs tool with args, printing an install hint instead of failing
// when the tool is missing.
func optional(tool, install string, args ...string) error {
	err := sh.RunV(tool, args...)
	if err != nil && isCommandNotFound(err) {
		fmt.Printf("%s not found (install: %s)\n", tool, install)
		return nil
	}
	return err
}

// isCommandNotFound checks if the error indicates the command was not found.
func isCommandNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "executable file not found")
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || out == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
