// ticketcsv/sink/stdout/driver.go
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/sink"
)

/* ────────── public config ────────── */
type Config struct {
	MaxBytes int       `yaml:"max_bytes"` // 0 = print the whole CSV
	Header   bool      `yaml:"header"`    // print "[sink 000001] id rows=n" first
	Out      io.Writer `yaml:"-"`         // defaults to os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	ack sink.EmitFn

	mu sync.Mutex // serializes writes to cfg.Out
}

var seq uint64

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	d.cfg = c
	return nil
}

func (d *driver) Push(_ context.Context, f *apiv1.Frame) error {
	body := f.CSV
	if d.cfg.MaxBytes > 0 && len(body) > d.cfg.MaxBytes {
		cut := d.cfg.MaxBytes
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + fmt.Sprintf("… (%d bytes truncated)\n", len(f.CSV)-cut)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Header {
		if _, err := fmt.Fprintf(d.cfg.Out, "[sink %06d] %s policy=%s rows=%d\n",
			atomic.AddUint64(&seq, 1), f.ID, f.Policy, f.Rows); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(d.cfg.Out, body); err != nil {
		return err
	}
	if d.ack != nil {
		d.ack(sink.Ack{FrameID: f.ID, Sink: "stdout"})
	}
	return nil
}

func (d *driver) Close() error { return nil }

/* ────────── sink.AckAware ────────── */
func (d *driver) BindAck(fn sink.EmitFn) { d.ack = fn }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
