package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradestore",
	Short: "In-memory trade record service",
	Long: `Tradestore serves a JSON API for listing, filtering, creating,
updating and deleting trade records held in memory.

Configuration is read from the environment (PORT, LOG_LEVEL, READ_TIMEOUT,
WRITE_TIMEOUT, IDLE_TIMEOUT, SHUTDOWN_TIMEOUT, SEED_FILE, SEED_DISABLED).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
