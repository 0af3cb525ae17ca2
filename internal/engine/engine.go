package engine

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"ticketcsv/internal/logging"
	"ticketcsv/internal/pipeline"
	"ticketcsv/internal/transport"
)

const shutdownGrace = 10 * time.Second

type Engine struct {
	transport *transport.Server
	runner    *pipeline.Runner
	http      *http.Server
	httpLis   net.Listener
	metrics   *http.Server
}

// Runner exposes the compiled pipeline for one-shot runs.
func (e *Engine) Runner() *pipeline.Runner { return e.runner }

// HTTPAddr is the bound address of the HTTP API.
func (e *Engine) HTTPAddr() net.Addr { return e.httpLis.Addr() }

// GRPCAddr is the bound address of the gRPC transport, or nil when disabled.
func (e *Engine) GRPCAddr() net.Addr {
	if e.transport == nil {
		return nil
	}
	return e.transport.Addr()
}

func (e *Engine) closeEarly() {
	if e.transport != nil {
		e.transport.Stop()
	}
	_ = e.runner.Close()
}

// Run serves every listener until ctx ends, then shuts them down and
// releases the pipeline.
func (e *Engine) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	logging.L().Info("http api listening", "addr", e.httpLis.Addr().String())
	g.Go(func() error { return ignoreClosed(e.http.Serve(e.httpLis)) })

	if e.transport != nil {
		logging.L().Info("grpc transport listening", "addr", e.transport.Addr().String())
		g.Go(func() error {
			if err := e.transport.Serve(); !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		})
	}
	if e.metrics != nil {
		g.Go(func() error { return ignoreClosed(e.metrics.ListenAndServe()) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.L().Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if e.transport != nil {
			e.transport.Stop()
		}
		errs := []error{e.http.Shutdown(sctx)}
		if e.metrics != nil {
			errs = append(errs, e.metrics.Shutdown(sctx))
		}
		errs = append(errs, e.runner.Close())
		return errors.Join(errs...)
	})
	return g.Wait()
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
