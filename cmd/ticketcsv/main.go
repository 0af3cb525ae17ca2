// Command ticketcsv runs the ticket status automation: an HTTP/gRPC service,
// a one-shot pipeline run, or a local CSV transform.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ticketcsv/internal/config"
	"ticketcsv/internal/logging"
	"ticketcsv/internal/spec"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "ticketcsv",
	Short: "Ticket status automation",
	Long: `ticketcsv exports pending tickets, assigns new statuses and imports
the result back.

Without --config the job reads from and writes to the backend configured by
BACKEND_URL, USERNAME, PASSWORD, WORKSPACE_UUID and MANAGER_UUID.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logging.InitFromEnv(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "job spec YAML")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $TICKETCSV_LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, runCmd, transformCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func loadJob() (spec.File, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.LoadJobSpec(configPath)
}
