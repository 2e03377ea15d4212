package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subcue/subcue/internal/textenc"
	"github.com/subcue/subcue/pkg/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file between SRT, VTT, and plain text",
	Long: `Convert a subtitle file to another format, repairing what can be repaired
along the way.

The input format is auto-detected unless --from is given. Recoverable
problems are reported as warnings and fixed; unrecoverable cues are dropped
with an error report.

Examples:
  subcue convert movie.srt --format vtt
  subcue convert talk.vtt -f srt -o talk_fixed.srt
  subcue convert episode.srt -f srt --preserve-indexes`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("format", "f", "", "Output format (srt, vtt, text); defaults to the configured format")
	convertCmd.Flags().
		String("from", "", "Input format (srt, vtt); auto-detected when empty")
	convertCmd.Flags().
		BoolP("preserve-indexes", "p", false, "Keep source cue numbers and identifiers instead of renumbering")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	from, _ := cmd.Flags().GetString("from")
	outputPath, _ := cmd.Flags().GetString("output")
	preserve, _ := cmd.Flags().GetBool("preserve-indexes")
	if !cmd.Flags().Changed("preserve-indexes") {
		preserve = cfg.PreserveIndexes
	}
	if formatStr == "" {
		formatStr = cfg.DefaultFormat
	}

	format, err := outputFormat(formatStr)
	if err != nil {
		return err
	}

	doc, err := parseFile(inputPath, from, preserve)
	if err != nil {
		return err
	}
	reportDiagnostics(doc)
	if doc.Type == subtitle.FormatUnknown {
		return fmt.Errorf("could not parse %s as a subtitle file", inputPath)
	}

	out, err := subtitle.Build(doc, &subtitle.BuildOptions{
		Format:          format,
		PreserveIndexes: preserve,
	})
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = replaceExtension(inputPath, format)
	}
	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Converted successfully: %s\n", absOutput)
	fmt.Printf("  Cues: %d\n", len(doc.Cues))
	fmt.Printf("  Diagnostics: %d\n", len(doc.Errors))

	return nil
}

func parseFile(path, from string, preserve bool) (*subtitle.Document, error) {
	content, err := textenc.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := &subtitle.ParseOptions{
		PreserveIndexes: preserve,
		Trace:           logger.Debugf,
	}

	switch strings.ToLower(from) {
	case "":
		return subtitle.Parse(content, opts), nil
	case "srt":
		return subtitle.ParseSRT(content, opts), nil
	case "vtt":
		return subtitle.ParseVTT(content, opts), nil
	}
	return nil, fmt.Errorf("unsupported input format %q: use srt or vtt", from)
}

func reportDiagnostics(doc *subtitle.Document) {
	for _, diag := range doc.Errors {
		if diag.Severity == subtitle.SeverityError {
			logger.Errorw("Parse error",
				"line", diag.Line,
				"message", diag.Message,
			)
		} else {
			logger.Warnw("Parse warning",
				"line", diag.Line,
				"message", diag.Message,
			)
		}
	}
}

func outputFormat(s string) (subtitle.Format, error) {
	switch strings.ToLower(s) {
	case "srt":
		return subtitle.FormatSRT, nil
	case "vtt":
		return subtitle.FormatVTT, nil
	case "text", "txt":
		return subtitle.FormatText, nil
	}
	return "", fmt.Errorf("unsupported format %q: use srt, vtt, or text", s)
}

func replaceExtension(path string, format subtitle.Format) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	switch format {
	case subtitle.FormatVTT:
		return base + ".vtt"
	case subtitle.FormatText:
		return base + ".txt"
	default:
		return base + ".srt"
	}
}
