// Package backend is the source driver that authenticates against the ticket
// backend and exports the workspace's pending tickets.
package backend

import (
	"context"
	"fmt"
	"time"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/internal/backend"
	"ticketcsv/internal/logging"
	"ticketcsv/source"
)

// Exporter is the slice of the backend client the driver needs.
type Exporter interface {
	Authenticate(ctx context.Context) (string, error)
	ExportPending(ctx context.Context, token string) (string, error)
}

type driver struct {
	api Exporter
}

// Configure accepts a backend.Config or a ready Exporter.
func (d *driver) Configure(raw any) error {
	switch c := raw.(type) {
	case backend.Config:
		cl, err := backend.NewClient(c, nil)
		if err != nil {
			return err
		}
		d.api = cl
	case Exporter:
		d.api = c
	default:
		return fmt.Errorf("backend-source: expected backend.Config, got %T", raw)
	}
	return nil
}

func (d *driver) Fetch(ctx context.Context) (*apiv1.Frame, error) {
	token, err := d.api.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	logging.L().Info("backend token provided")
	csv, err := d.api.ExportPending(ctx, token)
	if err != nil {
		return nil, err
	}
	logging.L().Info("fetched pending tickets", "bytes", len(csv))
	return &apiv1.Frame{CSV: csv, Token: token, FetchedAt: time.Now()}, nil
}

func (d *driver) Close() error { return nil }

func init() { source.Register("backend", func() source.Adapter { return &driver{} }) }
