// Package cli wires the nurical commands: sync, cleanup, calendars,
// version. Recoverable pipeline failures are logged and skipped; a
// command only returns an error — and the process only exits nonzero —
// when authorization or setup fails.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/haneul-labs/nurical/internal/logger"
)

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nurical",
	Short: "Sync Artnuri support-program announcements into Google Calendar",
	Long: `nurical crawls the Artnuri support-program listing, enriches each
announcement from its detail page, and registers them as all-day events
in a Google Calendar of your choice — without creating duplicates across
runs. The cleanup command removes only the events nurical created.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"Configuration directory (default ~/.nurical)")
}

// Execute runs the root command. It exits 1 when a command fails, which
// in practice means authorization or setup failed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
