// Package cli defines the command-line surface: a long-running API server
// and a one-shot audit command.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	verbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "pagelens",
		Short:   "Single-document SEO audit tool and API server",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = time.RFC3339
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newServeCmd())
	root.AddCommand(newAnalyzeCmd())

	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
