package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/internal/logging"
	"ticketcsv/internal/status"
	"ticketcsv/internal/telemetry"
	"ticketcsv/internal/transform"
	"ticketcsv/sink"
	"ticketcsv/source"
)

// Result summarizes one automation run.
type Result struct {
	ID     string
	CSV    string // transformed payload, "" when there was nothing to process
	Policy string
	Rows   int
	Counts map[string]int
	Acks   []sink.Ack
	Empty  bool
}

type namedSink struct {
	name string
	sink.Adapter
}

type stage struct {
	name    string
	client  transform.Client
	timeout time.Duration
}

// Runner moves one batch from the source through the transform stage to
// every sink. Runs are serialized: a batch is never processed concurrently
// with another one.
type Runner struct {
	source source.Adapter
	stage  *stage
	sinks  []namedSink

	run sync.Mutex

	mu   sync.Mutex
	acks []sink.Ack
}

func NewRunner() *Runner { return &Runner{} }

func (r *Runner) SetSource(s source.Adapter)          { r.source = s }
func (r *Runner) AddSink(name string, s sink.Adapter) { r.sinks = append(r.sinks, namedSink{name, s}) }

// SetTransformer installs the transform stage; timeout 0 means no deadline.
func (r *Runner) SetTransformer(name string, c transform.Client, timeout time.Duration) {
	r.stage = &stage{name: name, client: c, timeout: timeout}
}

// Transformer exposes the stage client so the HTTP and gRPC surfaces share it.
func (r *Runner) Transformer() transform.Client {
	if r.stage == nil {
		return nil
	}
	return r.stage.client
}

// Ack is bound to every AckAware sink.
func (r *Runner) Ack(a sink.Ack) {
	r.mu.Lock()
	r.acks = append(r.acks, a)
	r.mu.Unlock()
}

func (r *Runner) takeAcks() []sink.Ack {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.acks
	r.acks = nil
	return out
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.source == nil {
		return nil, errors.New("runner: no source configured")
	}
	if r.stage == nil {
		return nil, errors.New("runner: no transformer configured")
	}
	r.run.Lock()
	defer r.run.Unlock()

	start := time.Now()
	res, err := r.runOnce(ctx)
	switch {
	case err != nil:
		telemetry.ObserveRun("error", time.Since(start))
	case res.Empty:
		telemetry.ObserveRun("empty", time.Since(start))
	default:
		telemetry.ObserveRun("ok", time.Since(start))
	}
	return res, err
}

func (r *Runner) runOnce(ctx context.Context) (*Result, error) {
	id := uuid.NewString()
	log := logging.L().With("run", id)

	f, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	f.ID = id
	log.Debug("fetched export", "bytes", len(f.CSV), "fetched_at", f.FetchedAt)
	res := &Result{ID: id, Counts: map[string]int{}}
	if status.IsBlank(f.CSV) {
		log.Info("nothing to process")
		res.Empty = true
		return res, nil
	}

	resp, err := r.transform(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", r.stage.name, err)
	}
	f.CSV, f.Policy, f.Rows, f.Counts = resp.CSV, resp.Policy, resp.Rows, resp.Counts
	log.Info("simulated interaction", "policy", f.Policy, "rows", f.Rows, "counts", f.Counts)

	r.takeAcks()
	if err := r.pushFrame(ctx, f); err != nil {
		return nil, err
	}
	res.CSV, res.Policy, res.Rows, res.Counts = f.CSV, f.Policy, f.Rows, f.Counts
	res.Acks = r.takeAcks()
	log.Info("automation finished", "sinks", len(r.sinks), "acks", len(res.Acks))
	return res, nil
}

func (r *Runner) transform(ctx context.Context, f *apiv1.Frame) (*transform.Response, error) {
	if r.stage.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.stage.timeout)
		defer cancel()
	}
	return r.stage.client.Transform(ctx, transform.Request{CSV: f.CSV})
}

/*──────── frame routing ───────*/
func (r *Runner) pushFrame(ctx context.Context, f *apiv1.Frame) error {
	for _, s := range r.sinks {
		if err := s.Push(ctx, f); err != nil {
			return fmt.Errorf("sink %s: %w", s.name, err)
		}
	}
	return nil
}

// Close releases the source, sinks and transform client.
func (r *Runner) Close() error {
	var errs []error
	if r.source != nil {
		errs = append(errs, r.source.Close())
	}
	for _, s := range r.sinks {
		errs = append(errs, s.Close())
	}
	if r.stage != nil {
		errs = append(errs, r.stage.client.Close())
	}
	return errors.Join(errs...)
}
