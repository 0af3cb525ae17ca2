package status

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// script replays fixed draws and fails the test when it runs dry.
type script struct {
	t    *testing.T
	vals []float64
	used int
}

func (s *script) Float64() float64 {
	if s.used >= len(s.vals) {
		s.t.Fatalf("random source exhausted after %d draws", s.used)
	}
	v := s.vals[s.used]
	s.used++
	return v
}

func TestDraw(t *testing.T) {
	tests := []struct {
		r    float64
		want Status
	}{
		{0, Pending},
		{0.2999, Pending},
		{0.3, Open},
		{0.5999, Open},
		{0.6, Closed},
		{0.999999, Closed},
	}
	for _, tt := range tests {
		if got := Draw(tt.r); got != tt.want {
			t.Fatalf("Draw(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestReassign_BoundaryDraws(t *testing.T) {
	in := numberedDoc(t, 6, "PENDING")
	rnd := &script{t: t, vals: []float64{0.0, 0.29, 0.3, 0.59, 0.6, 0.999}}
	out := Reassign(in, DefaultColumn, rnd)

	var got []string
	for i := range out.Rows {
		v, _ := out.Value(i, DefaultColumn)
		got = append(got, v)
	}
	want := []string{"PENDING", "PENDING", "OPEN", "OPEN", "CLOSED", "CLOSED"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statuses (-want +got):\n%s", diff)
	}
	if rnd.used != 6 {
		t.Fatalf("want 6 draws, got %d", rnd.used)
	}
}

func TestReassign_PassThroughNonPending(t *testing.T) {
	in, err := Parse(readFixture(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rnd := &script{t: t, vals: []float64{0.9, 0.9, 0.9, 0.9, 0.9, 0.9}}
	out := Reassign(in, DefaultColumn, rnd)

	if rnd.used != 6 {
		t.Fatalf("fixture has 6 PENDING rows, got %d draws", rnd.used)
	}
	col := in.Column(DefaultColumn)
	for i, r := range in.Rows {
		if r[col] == string(Pending) {
			if out.Rows[i][col] != string(Closed) {
				t.Fatalf("row %d: want CLOSED, got %s", i, out.Rows[i][col])
			}
			continue
		}
		if diff := cmp.Diff(r, out.Rows[i]); diff != "" {
			t.Fatalf("row %d changed (-in +out):\n%s", i, diff)
		}
	}
}

func TestReassign_OnlyExactPendingLiteral(t *testing.T) {
	d, err := NewDocument([]string{"id", "status"}, []Row{{"1", "pending"}, {"2", " PENDING"}, {"3", ""}, {"4", "ON_HOLD"}})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	rnd := &script{t: t}
	out := Reassign(d, DefaultColumn, rnd)
	if diff := cmp.Diff(d, out); diff != "" {
		t.Fatalf("document changed (-in +out):\n%s", diff)
	}
}

func TestReassign_NilSourceWithoutPending(t *testing.T) {
	d, err := NewDocument([]string{"id", "status"}, []Row{{"1", "OPEN"}, {"2", "CLOSED"}})
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if diff := cmp.Diff(d, Reassign(d, DefaultColumn, nil)); diff != "" {
		t.Fatalf("document changed (-in +out):\n%s", diff)
	}
	if _, err := Apply(d, Options{Policy: PolicyConditionalRandom}); err != ErrNoRandomSource {
		t.Fatalf("Apply without source: want ErrNoRandomSource, got %v", err)
	}
}

func TestReassign_PreservesOrderAndInput(t *testing.T) {
	in := numberedDoc(t, 5, "PENDING")
	before := in.Clone()
	out := Reassign(in, DefaultColumn, &script{t: t, vals: []float64{0.5, 0.1, 0.7, 0.4, 0.0}})
	if diff := cmp.Diff(before, in); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
	for i := range out.Rows {
		if out.Rows[i][0] != before.Rows[i][0] || out.Rows[i][2] != before.Rows[i][2] {
			t.Fatalf("row %d: order or cells changed", i)
		}
	}
}

func TestNewRandom_Seeded(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for i := 0; i < 100; i++ {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d differs for equal seeds: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestSeeded_FreshSourcePerCall(t *testing.T) {
	f := Seeded(7)
	first, second := f(), f()
	if first.Float64() != second.Float64() {
		t.Fatal("sources from a seeded factory should replay the same stream")
	}
}
