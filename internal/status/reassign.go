package status

import (
	"math/rand/v2"
	"time"
)

// Thresholds of the categorical draw applied to PENDING rows.
const (
	stayPendingBelow = 0.3
	openBelow        = 0.6
)

// RandomSource yields independent uniform values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// SourceFactory builds a fresh RandomSource for one invocation. Sources are
// not shared between calls, so concurrent callers never contend.
type SourceFactory func() RandomSource

// NewRandom returns a PCG-backed source. A zero seed seeds from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1|1))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seeded returns a factory whose sources all start from seed; a zero seed
// gives each source its own clock seed.
func Seeded(seed uint64) SourceFactory {
	return func() RandomSource { return NewRandom(seed) }
}

// Draw maps a uniform value to a status.
func Draw(r float64) Status {
	switch {
	case r < stayPendingBelow:
		return Pending
	case r < openBelow:
		return Open
	default:
		return Closed
	}
}

// Reassign redraws the status of every row whose status cell is exactly
// PENDING, consuming one value from rnd per such row. All other rows are
// copied untouched, whatever their status holds. rnd must be non-nil when
// the document has a PENDING row; Apply reports ErrNoRandomSource instead.
func Reassign(d *Document, column string, rnd RandomSource) *Document {
	out := d.Clone()
	col := out.Column(column)
	if col < 0 {
		return out
	}
	for _, r := range out.Rows {
		if r[col] != string(Pending) {
			continue
		}
		r[col] = string(Draw(rnd.Float64()))
	}
	return out
}
