package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/overlay"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize [image] [landmarks.json]",
	Short: "Draw landmark markers onto a photo",
	Long: `Render the representative landmarks of the facial thirds and the five
features onto a photo and write the result as PNG.

Example:
  physiognomy visualize face.jpg face.json -o overlay.png --max-size 1024`,
	Args: cobra.ExactArgs(2),
	RunE: runVisualize,
}

func init() {
	rootCmd.AddCommand(visualizeCmd)

	visualizeCmd.Flags().StringP("output", "o", "", "Output PNG path (required)")
	visualizeCmd.Flags().Int("max-size", -1, "Longest edge of the output, 0 keeps the original size (defaults to OVERLAY_MAX_SIZE)")
	_ = visualizeCmd.MarkFlagRequired("output")
}

func runVisualize(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	output := mustGetString(cmd, "output")
	maxSize := mustGetInt(cmd, "max-size")
	if maxSize < 0 {
		maxSize = cfg.Overlay.MaxSize
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	points, err := readLandmarks(args[1])
	if err != nil {
		return err
	}

	result, err := overlay.Render(data, points, overlay.Options{MaxSize: maxSize})
	if errors.Is(err, overlay.ErrDecode) {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, result.PNG, 0o644); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d markers)\n", output, result.Width, result.Height, len(result.Dots))
	return nil
}
