package cli

import (
	"github.com/spf13/cobra"

	"github.com/subcue/subcue/internal/config"
	"github.com/subcue/subcue/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subcue",
	Short: "Tolerant SRT and WebVTT subtitle toolbox",
	Long: `Subcue parses SubRip (SRT) and WebVTT subtitle files, including badly
malformed ones, and converts, checks, and retimes them.

Parsing always produces a best-effort cue list plus a diagnostic report
instead of failing on the first bad line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		var err error
		cfg, err = config.Load()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
