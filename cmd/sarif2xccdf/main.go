// sarif2xccdf validates SARIF logs and XCCDF benchmarks and converts one into
// the other.
//
// Usage:
//
//	sarif2xccdf validate results.sarif benchmark.xml
//	golangci-lint run --output.sarif.path=stdout ./... | sarif2xccdf validate -
//	sarif2xccdf convert gosec.sarif -o benchmark.xml --validate
//	sarif2xccdf serialize benchmark.json > benchmark.xml
//	go vet ./... 2>&1 | sarif2xccdf wrap sarif --tool govet
//
// Output modes for validation reports (auto-detected):
//
//	terminal  styled Unicode output (default when TTY)
//	llm       terse plain text for AI consumption (default when piped)
//	json      structured JSON for automation
//
// Exit codes: 0 when every input is valid, 1 when any input is invalid,
// 2 on usage or I/O errors.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dkoosis/sarif2xccdf/internal/config"
	"github.com/dkoosis/sarif2xccdf/internal/logging"
	"github.com/dkoosis/sarif2xccdf/pkg/validate"
	"github.com/dkoosis/sarif2xccdf/pkg/xmllint"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the state shared by all commands of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags config.CliFlags
	cfg   *config.ResolvedConfig
	log   *logrus.Entry
	v     *validate.Validator

	// exit is the code returned when the command itself succeeded.
	exit int

	readStdin func() ([]byte, error)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	a.readStdin = sync.OnceValues(func() ([]byte, error) {
		return io.ReadAll(a.stdin)
	})

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "sarif2xccdf: %v\n", err)
		return exitError
	}
	return a.exit
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sarif2xccdf",
		Short: "Validate SARIF and XCCDF documents and convert between them",
		Long: `sarif2xccdf checks SARIF 2.1.0 logs against the SARIF JSON Schema and
XCCDF 1.2 documents against the XCCDF XML Schema, serializes XCCDF
benchmarks described in JSON, and converts SARIF results into XCCDF
benchmarks with test results.

Configuration is read from flags, SARIF2XCCDF_* environment variables and
.sarif2xccdf.yaml, in that order of priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Format, "format", "", "Output format: auto, terminal, llm, json")
	pf.StringVar(&a.flags.Theme, "theme", "", "Theme: default, orca, mono")
	pf.IntVarP(&a.flags.Jobs, "jobs", "j", config.DefaultJobs, "Number of inputs validated concurrently")
	pf.BoolVar(&a.flags.Debug, "debug", false, "Enable debug logging on stderr")
	pf.StringVar(&a.flags.SARIFSchema, "sarif-schema", "", "SARIF JSON Schema file (default: embedded copy)")
	pf.StringVar(&a.flags.XCCDFSchema, "xccdf-schema", "", "XCCDF XSD file (default: embedded copy)")
	pf.StringVar(&a.flags.Xmllint, "xmllint", "", "Path to the xmllint executable (default: from PATH)")

	root.AddCommand(
		newValidateCmd(a),
		newSerializeCmd(a),
		newConvertCmd(a),
		newWrapCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves configuration and builds the logger and validator once
// flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	a.flags.JobsSet = cmd.Flags().Changed("jobs")
	a.flags.DebugSet = cmd.Flags().Changed("debug")

	cfg, err := config.ResolveConfig(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logrus.NewEntry(logging.Configure(a.stderr, logging.LevelFor(cfg.Debug)))
	if cfg.ConfigFile != "" {
		a.log.WithField("path", cfg.ConfigFile).Debug("loaded config file")
	}
	a.log.WithFields(logrus.Fields{
		"format":       cfg.Format,
		"formatSource": cfg.FormatSource,
		"theme":        cfg.Theme,
		"themeSource":  cfg.ThemeSource,
		"jobs":         cfg.Jobs,
	}).Debug("resolved config")

	opts := []validate.Option{
		validate.WithLogger(a.log),
		validate.WithXSDEngine(&xmllint.Runner{Path: cfg.Xmllint, Logger: a.log}),
	}
	if cfg.SARIFSchema != "" {
		opts = append(opts, validate.WithSchemaCache(validate.NewSchemaCache(cfg.SARIFSchema, a.log)))
	}
	if cfg.XCCDFSchema != "" {
		opts = append(opts, validate.WithXCCDFSchema(cfg.XCCDFSchema))
	}
	a.v = validate.New(opts...)
	return nil
}

// readInput returns the contents of path, or of stdin for "-".
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := a.readStdin()
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes text to path, or to stdout when path is empty.
func (a *app) writeOutput(path, text string) error {
	if path == "" {
		_, err := io.WriteString(a.stdout, text+"\n")
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
