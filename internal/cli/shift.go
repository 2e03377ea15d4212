package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/subcue/subcue/pkg/subtitle"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file] [seconds]",
	Short: "Shift all cue timings by a number of seconds",
	Long: `Shift every cue in a subtitle file forward or backward in time.

Seconds may be fractional and negative; timings never go below zero.
The output stays in the input's format.

Examples:
  subcue shift movie.srt 2.5
  subcue shift movie.srt -1.2 -o movie_synced.srt`,
	Args: cobra.ExactArgs(2),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().
		BoolP("preserve-indexes", "p", false, "Keep source cue numbers and identifiers instead of renumbering")
}

func runShift(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	seconds, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("the seconds argument must be numeric, got %q", args[1])
	}
	delta := time.Duration(seconds * float64(time.Second))

	outputPath, _ := cmd.Flags().GetString("output")
	preserve, _ := cmd.Flags().GetBool("preserve-indexes")

	doc, err := parseFile(inputPath, "", preserve)
	if err != nil {
		return err
	}
	reportDiagnostics(doc)
	if doc.Type == subtitle.FormatUnknown {
		return fmt.Errorf("could not parse %s as a subtitle file", inputPath)
	}

	logger.Infow("Shifting subtitles",
		"input", inputPath,
		"seconds", seconds,
		"cues", len(doc.Cues),
	)

	doc.Cues = subtitle.Shift(doc.Cues, delta)

	out, err := subtitle.Build(doc, &subtitle.BuildOptions{
		Format:          doc.Type,
		PreserveIndexes: preserve,
	})
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = inputPath
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Shifted %d cues by %+.2fs: %s\n", len(doc.Cues), seconds, absOutput)

	return nil
}
