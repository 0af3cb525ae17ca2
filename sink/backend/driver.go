// Package backend is the sink driver that imports the reassigned statuses
// into the ticket backend under the token the source authenticated with.
package backend

import (
	"context"
	"errors"
	"fmt"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/internal/backend"
	"ticketcsv/internal/logging"
	"ticketcsv/sink"
)

// Importer is the slice of the backend client the driver needs.
type Importer interface {
	Authenticate(ctx context.Context) (string, error)
	ImportStatuses(ctx context.Context, token, csv string) error
}

type driver struct {
	api Importer
	ack sink.EmitFn
}

// Configure accepts a backend.Config or a ready Importer.
func (d *driver) Configure(raw any) error {
	switch c := raw.(type) {
	case backend.Config:
		cl, err := backend.NewClient(c, nil)
		if err != nil {
			return err
		}
		d.api = cl
	case Importer:
		d.api = c
	default:
		return fmt.Errorf("backend-sink: expected backend.Config, got %T", raw)
	}
	return nil
}

// Push imports f.CSV. Frames from sources that did not authenticate get a
// token of their own.
func (d *driver) Push(ctx context.Context, f *apiv1.Frame) error {
	if f.Empty() {
		return errors.New("backend-sink: refusing to import an empty csv")
	}
	token := f.Token
	if token == "" {
		var err error
		if token, err = d.api.Authenticate(ctx); err != nil {
			return err
		}
	}
	if err := d.api.ImportStatuses(ctx, token, f.CSV); err != nil {
		return err
	}
	logging.L().Info("imported interaction", "frame", f.ID, "rows", f.Rows)
	if d.ack != nil {
		d.ack(sink.Ack{FrameID: f.ID, Sink: "backend"})
	}
	return nil
}

func (d *driver) Close() error { return nil }

func (d *driver) BindAck(fn sink.EmitFn) { d.ack = fn }

func init() { sink.Register("backend", func() sink.Adapter { return &driver{} }) }
