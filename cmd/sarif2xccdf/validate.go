package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/sarif2xccdf/internal/detect"
	"github.com/dkoosis/sarif2xccdf/pkg/render"
	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
	"github.com/dkoosis/sarif2xccdf/pkg/validate"
	"github.com/dkoosis/sarif2xccdf/pkg/xccdf"
)

// checkFunc validates one named input.
type checkFunc func(ctx context.Context, path string) (render.FileResult, error)

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate SARIF logs, XCCDF documents and JSON benchmarks",
		Long: `Validate each input against the schema for its detected format.
SARIF logs are checked against the SARIF 2.1.0 JSON Schema. XCCDF XML
documents and JSON-encoded benchmarks are checked against the XCCDF 1.2
XML Schema. Use "-" to read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateAll(cmd.Context(), args, a.checkDetected)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sarif FILE...",
		Short: "Validate inputs as SARIF 2.1.0 logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateAll(cmd.Context(), args, a.checkSARIF)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "xccdf FILE...",
		Short: "Validate inputs as XCCDF 1.2 documents or JSON benchmarks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateAll(cmd.Context(), args, a.checkXCCDF)
		},
	})
	return cmd
}

// validateAll checks every input with at most cfg.Jobs in flight, renders the
// report in input order and sets the exit code.
func (a *app) validateAll(ctx context.Context, paths []string, check checkFunc) error {
	results := make([]render.FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			res, err := check(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	report := render.Report{Command: "validate", Files: results}
	fmt.Fprint(a.stdout, a.renderer(a.stdout).Render(report))
	if report.Invalid() > 0 {
		a.exit = exitInvalid
	}
	return nil
}

func (a *app) checkDetected(ctx context.Context, path string) (render.FileResult, error) {
	data, err := a.readInput(path)
	if err != nil {
		return render.FileResult{}, err
	}

	format := detect.Sniff(data)
	a.log.WithField("input", displayName(path)).WithField("format", format).Debug("detected format")

	switch format {
	case detect.SARIF:
		return a.sarifResult(ctx, path, validate.SARIFBytes(data), data), nil
	case detect.XCCDF:
		return fileResult(path, format.String(), a.v.XCCDF(ctx, validate.XCCDFDocument(string(data)))), nil
	case detect.Benchmark:
		return a.benchmarkResult(ctx, path, data), nil
	default:
		return render.FileResult{
			Path:   displayName(path),
			Format: format.String(),
			Errors: []string{"unrecognized input format (expected SARIF, XCCDF or a JSON benchmark)"},
		}, nil
	}
}

func (a *app) checkSARIF(ctx context.Context, path string) (render.FileResult, error) {
	if path != "-" {
		return a.sarifResult(ctx, path, validate.SARIFFile(path), nil), nil
	}
	data, err := a.readInput(path)
	if err != nil {
		return render.FileResult{}, err
	}
	return a.sarifResult(ctx, path, validate.SARIFBytes(data), data), nil
}

func (a *app) checkXCCDF(ctx context.Context, path string) (render.FileResult, error) {
	data, err := a.readInput(path)
	if err != nil {
		return render.FileResult{}, err
	}
	if detect.Sniff(data) == detect.Benchmark {
		return a.benchmarkResult(ctx, path, data), nil
	}
	return fileResult(path, detect.XCCDF.String(), a.v.XCCDF(ctx, validate.XCCDFDocument(string(data)))), nil
}

// sarifResult validates a SARIF input and, when it is valid, attaches its
// finding counts. data may be nil, in which case the file is read again.
func (a *app) sarifResult(ctx context.Context, path string, in validate.SARIFInput, data []byte) render.FileResult {
	res := fileResult(path, detect.SARIF.String(), a.v.SARIF(ctx, in))
	if !res.Valid {
		return res
	}

	var doc *sarif.Document
	var err error
	if data != nil {
		doc, err = sarif.ReadBytes(data)
	} else {
		doc, err = sarif.ReadFile(path)
	}
	if err != nil {
		a.log.WithError(err).WithField("input", displayName(path)).Debug("skipping issue summary")
		return res
	}
	res.Issues = issueStats(sarif.ComputeStats(doc))
	return res
}

func (a *app) benchmarkResult(ctx context.Context, path string, data []byte) render.FileResult {
	b, err := xccdf.Parse(data)
	if err != nil {
		return render.FileResult{
			Path:   displayName(path),
			Format: detect.Benchmark.String(),
			Errors: []string{err.Error()},
		}
	}
	return fileResult(path, detect.Benchmark.String(), a.v.XCCDF(ctx, validate.XCCDFBenchmark(b)))
}

func fileResult(path, format string, r validate.Result) render.FileResult {
	return render.FileResult{
		Path:   displayName(path),
		Format: format,
		Valid:  r.Valid,
		Errors: r.Errors,
	}
}

func issueStats(s sarif.Stats) *render.IssueStats {
	return &render.IssueStats{
		Total:      s.TotalIssues,
		Suppressed: s.Suppressed,
		ByLevel:    s.ByLevel,
	}
}
