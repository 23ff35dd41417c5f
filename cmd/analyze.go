package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kozaktomas/physiognomy/internal/catalog"
	"github.com/kozaktomas/physiognomy/internal/constants"
	"github.com/kozaktomas/physiognomy/internal/evaluator"
	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [landmarks.json...]",
	Short: "Evaluate landmark files against the rule catalog",
	Long: `Evaluate one or more landmark files and print the trait report per category.

Each file holds either a JSON array of {"name", "x", "y"} records or an object
with a "landmarks" array. Files are evaluated in parallel; output keeps the
order of the arguments.

Example:
  physiognomy analyze face.json
  physiognomy analyze --format json --metrics faces/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("format", "text", "Output format: text, json")
	analyzeCmd.Flags().Bool("metrics", false, "Include computed metrics in the output")
	analyzeCmd.Flags().Int("workers", constants.WorkerPoolSize, "Number of files evaluated in parallel")
}

// fileResult is the analysis of one landmark file.
type fileResult struct {
	File    string            `json:"file"`
	ID      string            `json:"id"`
	Report  *evaluator.Report `json:"report"`
	Tags    []string          `json:"tags"`
	Metrics []metric.Result   `json:"metrics,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := mustGetString(cmd, "format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (use text or json)", format)
	}
	includeMetrics := mustGetBool(cmd, "metrics")
	workers := max(1, mustGetInt(cmd, "workers"))

	cat, err := openCatalog(loadConfig(cmd))
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("faces"),
			progressbar.OptionClearOnFinish(),
		)
	}

	results := make([]fileResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, path := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := analyzeFile(path, cat)
			if err != nil {
				return err
			}
			if !includeMetrics {
				r.Metrics = nil
			}
			results[i] = *r
			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		if len(results) == 1 {
			return writeJSON(out, results[0])
		}
		return writeJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := writeReportText(out, r); err != nil {
			return err
		}
	}
	return nil
}

// readLandmarks decodes a landmark file.
func readLandmarks(path string) ([]landmark.Landmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	points, err := landmark.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

func analyzeFile(path string, cat *catalog.Catalog) (*fileResult, error) {
	points, err := readLandmarks(path)
	if err != nil {
		return nil, err
	}
	analysis, err := evaluator.Analyze(points, cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fileResult{
		File:    path,
		ID:      uuid.NewString(),
		Report:  analysis.Report,
		Tags:    analysis.Tags,
		Metrics: analysis.Metrics,
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeReportText prints one report grouped by category in catalog order.
func writeReportText(w io.Writer, r fileResult) error {
	fmt.Fprintf(w, "== %s\n", r.File)
	for _, c := range r.Report.Categories() {
		if c.Outcome == evaluator.FallbackApplied {
			fmt.Fprintf(w, "%s (no match)\n", c.Name)
		} else {
			fmt.Fprintf(w, "%s\n", c.Name)
		}
		for _, t := range c.Traits {
			fmt.Fprintf(w, "  - %s [%s]\n", t.Trait, strings.Join(t.Tags, ", "))
		}
	}
	fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Tags, ", "))

	if len(r.Metrics) == 0 {
		return nil
	}
	fmt.Fprintln(w, "Metrics:")
	return writeMetricsTable(w, r.Metrics)
}

func writeMetricsTable(w io.Writer, results []metric.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, m := range results {
		fmt.Fprintf(tw, "  %s\t%s\n", m.Key, m.Value)
	}
	return tw.Flush()
}
