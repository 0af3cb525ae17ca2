package engine

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"ticketcsv/internal/httpapi"
	"ticketcsv/internal/logging"
	"ticketcsv/internal/pipeline"
	"ticketcsv/internal/spec"
	"ticketcsv/internal/telemetry"
	"ticketcsv/internal/transport"
)

// Config selects listeners. A negative port disables that listener.
type Config struct {
	HTTPAddr    string
	GRPCPort    int
	MetricsPort int
	Job         spec.File
}

// FromJob takes the listener settings from the job's server section.
func FromJob(job spec.File) Config {
	return Config{
		HTTPAddr:    job.Server.HTTPAddr,
		GRPCPort:    job.Server.GRPCPort,
		MetricsPort: job.Server.MetricsPort,
		Job:         job,
	}
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. pipeline runner
	runner, err := pipeline.Compile(cfg.Job)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	tr := runner.Transformer()
	if err := tr.Health(ctx); err != nil {
		logging.L().Warn("transformer not healthy at startup", "err", err)
	}

	e := &Engine{runner: runner}

	// 2. transport server
	if cfg.GRPCPort >= 0 {
		e.transport, err = transport.StartServer(cfg.GRPCPort, tr)
		if err != nil {
			_ = runner.Close()
			return nil, fmt.Errorf("transport: %w", err)
		}
	}

	// 3. http api
	e.httpLis, err = net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		e.closeEarly()
		return nil, fmt.Errorf("http: %w", err)
	}
	e.http = &http.Server{
		Handler:           httpapi.NewRouter(tr, runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. metrics
	if cfg.MetricsPort >= 0 {
		e.metrics = telemetry.NewServer(cfg.MetricsPort)
	}
	return e, nil
}
