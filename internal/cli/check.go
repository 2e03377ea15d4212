package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subcue/subcue/pkg/subtitle"
)

var checkCmd = &cobra.Command{
	Use:   "check [subtitle_file]",
	Short: "Validate a subtitle file and print a diagnostics report",
	Long: `Parse a subtitle file and report every problem found: malformed
timestamps, missing or non-sequential indexes, overlapping cues, cues shown
too briefly or too long.

The exit status is non-zero when any error-severity problem is present.

Examples:
  subcue check movie.srt
  subcue check talk.vtt --from vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().
		String("from", "", "Input format (srt, vtt); auto-detected when empty")
}

func runCheck(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	from, _ := cmd.Flags().GetString("from")

	doc, err := parseFile(inputPath, from, true)
	if err != nil {
		return err
	}

	problems := len(doc.Errors)
	for _, diag := range doc.Errors {
		fmt.Printf("line %d: %s: %s\n", diag.Line, diag.Severity, diag.Message)
	}

	report := subtitle.Validate(doc.Cues)
	for _, diag := range report {
		fmt.Printf("cue %d: %s: %s\n", diag.Line, diag.Severity, diag.Message)
		problems++
	}

	fmt.Printf("\n%s: %d cues, %d problems\n", inputPath, len(doc.Cues), problems)

	if doc.HasErrors() {
		return fmt.Errorf("%d unrecoverable errors in %s", doc.ErrorCount(), inputPath)
	}
	for _, diag := range report {
		if diag.Severity == subtitle.SeverityError {
			return fmt.Errorf("validation failed for %s", inputPath)
		}
	}
	return nil
}
