// Package apiv1 holds the wire-level types shared by sources, sinks and the
// gRPC transformer service.
package apiv1

import "time"

// Frame is one CSV batch moving through the pipeline.
type Frame struct {
	ID        string
	CSV       string
	FetchedAt time.Time

	// Token is the bearer credential the source authenticated with. Sinks
	// that write back to the same backend reuse it; others ignore it.
	Token string

	// Set after the transform stage.
	Policy string
	Rows   int
	Counts map[string]int
}

// Empty reports whether the frame carries nothing to process.
func (f *Frame) Empty() bool { return f == nil || f.CSV == "" }
