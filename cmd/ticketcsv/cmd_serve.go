package main

import (
	"github.com/spf13/cobra"

	"ticketcsv/internal/engine"
)

var (
	httpAddr    string
	grpcPort    int
	metricsPort int
)

// serveCmd runs the HTTP API, the gRPC transformer and /metrics
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API, gRPC transformer and metrics",
	Long: `Serve the simulation and automation endpoints over HTTP, the
StatusTransformer over gRPC and Prometheus metrics. Flags override the job's
server section; a negative port disables that listener.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address")
	serveCmd.Flags().IntVar(&grpcPort, "grpc-port", 0, "gRPC port")
	serveCmd.Flags().IntVar(&metricsPort, "metrics-port", 0, "metrics port")
}

func runServe(cmd *cobra.Command, _ []string) error {
	job, err := loadJob()
	if err != nil {
		return err
	}
	cfg := engine.FromJob(job)
	if cmd.Flags().Changed("http-addr") {
		cfg.HTTPAddr = httpAddr
	}
	if cmd.Flags().Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("metrics-port") {
		cfg.MetricsPort = metricsPort
	}

	e, err := engine.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return e.Run(cmd.Context())
}
