package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/landmark"
	"github.com/kozaktomas/physiognomy/internal/metric"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [landmarks.json]",
	Short: "Print every computed metric for a landmark file",
	Long: `Compute all metrics for one face. Metrics whose landmarks are missing
fall back to their neutral values instead of failing.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().String("format", "text", "Output format: text, json")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	format := mustGetString(cmd, "format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (use text or json)", format)
	}

	points, err := readLandmarks(args[0])
	if err != nil {
		return err
	}
	results := metric.All(landmark.Build(points))

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	return writeMetricsTable(cmd.OutOrStdout(), results)
}
