package status

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput means the header could not be determined. Callers
	// handling raw text should treat blank input as "nothing to process"
	// before it reaches Parse; Transform does that already.
	ErrMalformedInput = errors.New("status: malformed csv input")

	ErrSchemaMismatch = errors.New("status: row does not match header")
	ErrNoRandomSource = errors.New("status: conditional policy needs a random source")
	ErrUnknownPolicy  = errors.New("status: unknown policy")
	ErrUnknownShape   = errors.New("status: unknown short-row policy")
)

// SchemaMismatchError reports a data row whose field count disagrees with
// the header.
type SchemaMismatchError struct {
	Line int // 1-based line in the input
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("status: line %d has %d fields, header has %d", e.Line, e.Got, e.Want)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }
