// Package file is a source driver reading the CSV export from disk, for
// replaying a saved export without a backend.
package file

import (
	"context"
	"fmt"
	"os"
	"time"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/source"
)

type Config struct {
	Path string `yaml:"path"`
}

type driver struct {
	cfg Config
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("file-source: expected Config, got %T", raw)
	}
	if c.Path == "" {
		return fmt.Errorf("file-source: path is required")
	}
	d.cfg = c
	return nil
}

func (d *driver) Fetch(ctx context.Context) (*apiv1.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(d.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file-source: %w", err)
	}
	return &apiv1.Frame{CSV: string(raw), FetchedAt: time.Now()}, nil
}

func (d *driver) Close() error { return nil }

func init() { source.Register("file", func() source.Adapter { return &driver{} }) }
