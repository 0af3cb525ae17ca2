// Package file is a sink driver that keeps every transformed batch on disk
// as <dir>/<frame-id>.csv.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/sink"
)

type Config struct {
	Dir string `yaml:"dir"`
}

type driver struct {
	cfg Config
	ack sink.EmitFn
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("file-sink: expected Config, got %T", raw)
	}
	if c.Dir == "" {
		return fmt.Errorf("file-sink: dir is required")
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("file-sink: %w", err)
	}
	d.cfg = c
	return nil
}

func (d *driver) Push(ctx context.Context, f *apiv1.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.ID == "" {
		return fmt.Errorf("file-sink: frame has no id")
	}
	dst := filepath.Join(d.cfg.Dir, f.ID+".csv")
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, []byte(f.CSV), 0o644); err != nil {
		return fmt.Errorf("file-sink: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("file-sink: %w", err)
	}
	if d.ack != nil {
		d.ack(sink.Ack{FrameID: f.ID, Sink: "file", Detail: dst})
	}
	return nil
}

func (d *driver) Close() error { return nil }

func (d *driver) BindAck(fn sink.EmitFn) { d.ack = fn }

func init() { sink.Register("file", func() sink.Adapter { return &driver{} }) }
