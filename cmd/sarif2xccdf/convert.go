package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkoosis/sarif2xccdf/internal/detect"
	"github.com/dkoosis/sarif2xccdf/pkg/convert"
	"github.com/dkoosis/sarif2xccdf/pkg/render"
	"github.com/dkoosis/sarif2xccdf/pkg/sarif"
	"github.com/dkoosis/sarif2xccdf/pkg/validate"
	"github.com/dkoosis/sarif2xccdf/pkg/xccdf"
)

func newSerializeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "serialize FILE.json",
		Short: "Print the XCCDF XML document for a JSON-encoded benchmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return fmt.Errorf("serialize: %w", err)
			}
			b, err := xccdf.Parse(data)
			if err != nil {
				return fmt.Errorf("serialize: %w", err)
			}
			doc, err := xccdf.Serialize(b)
			if err != nil {
				return fmt.Errorf("serialize: %w", err)
			}
			return a.writeOutput(output, doc)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to this file instead of stdout")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		output string
		check  bool
	)
	cmd := &cobra.Command{
		Use:   "convert FILE.sarif",
		Short: "Convert a SARIF log into an XCCDF benchmark with test results",
		Long: `Convert a SARIF 2.1.0 log into an XCCDF 1.2 benchmark. Each SARIF rule
becomes an XCCDF Rule and each run becomes a TestResult whose rule results
record fail, pass or informational outcomes.

With --validate the SARIF input is checked against the SARIF schema before
conversion and the generated document against the XCCDF schema after it.
The validation report goes to stdout when -o is given, stderr otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args[0], output, check)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the benchmark to this file instead of stdout")
	cmd.Flags().BoolVar(&check, "validate", false, "Validate the SARIF input and the generated XCCDF")
	cmd.Flags().StringVar(&a.flags.Namespace, "namespace", "", "Reverse-DNS namespace for generated ids (default sarif2xccdf)")
	cmd.Flags().StringVar(&a.flags.Status, "status", "", "Benchmark status: accepted, deprecated, draft, incomplete, interim")
	cmd.Flags().StringVar(&a.flags.Target, "target", "", "Target recorded on each test result")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, input, output string, check bool) error {
	ctx := cmd.Context()
	data, err := a.readInput(input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	// The report must not interleave with a document written to stdout.
	reportTo := a.stderr
	if output != "" {
		reportTo = a.stdout
	}
	report := render.Report{Command: "convert"}

	if check {
		res := fileResult(input, detect.SARIF.String(), a.v.SARIF(ctx, validate.SARIFBytes(data)))
		report.Files = append(report.Files, res)
		if !res.Valid {
			fmt.Fprint(reportTo, a.renderer(reportTo).Render(report))
			a.exit = exitInvalid
			return nil
		}
	}

	doc, err := sarif.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	b, err := convert.Convert(doc, convert.Options{
		Namespace: a.cfg.Convert.Namespace,
		Status:    a.cfg.Convert.Status,
		Target:    a.cfg.Convert.Target,
		Now:       time.Now,
	})
	if err != nil {
		return err
	}
	text, err := xccdf.Serialize(b)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	a.log.WithField("benchmark", b.ID).WithField("rules", len(b.Rule)).Debug("converted sarif log")

	if check {
		name := output
		if name == "" {
			name = "<stdout>"
		}
		res := fileResult(name, detect.XCCDF.String(), a.v.XCCDF(ctx, validate.XCCDFBenchmark(b)))
		report.Files = append(report.Files, res)
		if !res.Valid {
			a.exit = exitInvalid
		}
	}

	if err := a.writeOutput(output, text); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if check {
		fmt.Fprint(reportTo, a.renderer(reportTo).Render(report))
	}
	return nil
}
