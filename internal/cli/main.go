// Package cli defines the clipforge command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dreiko98/clipforge/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	var logLevel string
	var logFormat string

	root := &cobra.Command{
		Use:           "clipforge",
		Short:         "Cut and subtitle short-form clips from a local MP4",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logging.Config{Level: logLevel, Format: logFormat})
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	root.AddCommand(newRunCmd(), newSegmentCmd(), newSubsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
