package status

import (
	"fmt"
	"strings"
)

// Policy selects the status rule applied by Transform.
type Policy int

const (
	// PolicyDeterministic assigns statuses by row position (see Partition).
	PolicyDeterministic Policy = iota + 1
	// PolicyConditionalRandom redraws PENDING rows (see Reassign).
	PolicyConditionalRandom
)

func (p Policy) String() string {
	switch p {
	case PolicyDeterministic:
		return "deterministic"
	case PolicyConditionalRandom:
		return "conditional_random"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy accepts the policy names used in configs and requests.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deterministic", "partition":
		return PolicyDeterministic, nil
	case "conditional_random", "conditional-random", "random":
		return PolicyConditionalRandom, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownPolicy, s)
}

// Options parameterize a single transformation.
type Options struct {
	Policy Policy
	// Column names the status column; empty means DefaultColumn.
	Column string
	// Random feeds PolicyConditionalRandom and is ignored otherwise.
	Random RandomSource
	Shape  ShapePolicy
}

func (o Options) column() string {
	if o.Column == "" {
		return DefaultColumn
	}
	return o.Column
}

// Apply runs the selected policy over d and returns a new document.
func Apply(d *Document, opts Options) (*Document, error) {
	switch opts.Policy {
	case PolicyDeterministic:
		return Partition(d, opts.column()), nil
	case PolicyConditionalRandom:
		if opts.Random == nil {
			return nil, ErrNoRandomSource
		}
		return Reassign(d, opts.column(), opts.Random), nil
	}
	return nil, fmt.Errorf("%w %s", ErrUnknownPolicy, opts.Policy)
}

// IsBlank reports whether raw carries nothing to process.
func IsBlank(raw string) bool {
	return strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff")) == ""
}

// Transform parses raw, applies the policy and serializes the result. Blank
// input yields "" and no error.
func Transform(raw string, opts Options) (string, error) {
	out, err := TransformDocument(raw, opts)
	if err != nil || out == nil {
		return "", err
	}
	return Serialize(out), nil
}

// TransformDocument is Transform without the final serialization. It
// returns a nil document for blank input.
func TransformDocument(raw string, opts Options) (*Document, error) {
	if IsBlank(raw) {
		return nil, nil
	}
	d, err := ParseWith(raw, opts.Shape)
	if err != nil {
		return nil, err
	}
	return Apply(d, opts)
}
