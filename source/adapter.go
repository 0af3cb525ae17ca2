package source

import (
	"context"
	"fmt"
	"sort"

	apiv1 "ticketcsv/api/v1"
)

// Adapter is the common behaviour every source exposes.
type Adapter interface {
	Configure(any) error                         // driver-specific config ⇒ struct
	Fetch(context.Context) (*apiv1.Frame, error) // one batch per call
	Close() error                                // idempotent
}

/*──────── registry ───────*/

// Factory builds an Adapter (backend, file, …).
type Factory func() Adapter

var registry = map[string]Factory{}

// Register is called from each driver's init().
func Register(name string, f Factory) {
	registry[name] = f
}

// NewAdapter returns a driver by name.
func NewAdapter(name string) (Adapter, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("source: unsupported kind %q (have %v)", name, Kinds())
}

// Kinds lists registered driver names.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
