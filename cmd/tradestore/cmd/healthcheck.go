package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check a running server's /healthz endpoint",
	Long: `Send GET /healthz to the server on localhost and exit non-zero unless it
answers 200. Intended for container health checks.

Example:
  PORT=8080 tradestore healthcheck`,
	Args: cobra.NoArgs,
	RunE: runHealthcheck,
}

var healthcheckTimeout time.Duration

func init() {
	rootCmd.AddCommand(healthcheckCmd)

	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 2*time.Second, "request timeout")
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return checkHealth(fmt.Sprintf("http://localhost:%s/healthz", port), healthcheckTimeout)
}

func checkHealth(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("healthcheck: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: unexpected status %d", resp.StatusCode)
	}
	return nil
}
