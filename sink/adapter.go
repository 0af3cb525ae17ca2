package sink

import (
	"context"
	"fmt"

	apiv1 "ticketcsv/api/v1"
)

// Ack records that a sink durably handled a frame.
type Ack struct {
	FrameID string
	Sink    string
	Detail  string // driver-specific, e.g. "topic[0]@17"
}

// EmitFn is what a sink calls to notify the pipeline that a frame has been
// durably processed.
type EmitFn func(Ack)

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error                            // driver-specific config ⇒ struct
	Push(ctx context.Context, f *apiv1.Frame) error // consume one frame
	Close() error                                   // idempotent
}

// AckAware is *optional*; sinks that confirm durable writes implement it.
// The compiler wires the callback if present.
type AckAware interface {
	BindAck(EmitFn)
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
