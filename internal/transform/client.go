package transform

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/internal/status"
	"ticketcsv/internal/telemetry"
)

// Request asks for one transformation. Empty Policy, Column or ShortRows
// fall back to the client's defaults.
type Request struct {
	CSV    string
	Policy string
	Column string

	// ShortRows is "reject" or "pad".
	ShortRows string
}

// Response carries the transformed CSV; Counts tallies the status column.
type Response struct {
	CSV    string
	Policy string
	Rows   int
	Counts map[string]int
}

// Client wraps a transformer (in-process or over gRPC) and exposes a uniform API.
type Client interface {
	Transform(ctx context.Context, req Request) (*Response, error)
	Health(ctx context.Context) error
	Close() error
}

// Defaults apply to requests that leave fields empty.
type Defaults struct {
	Policy status.Policy
	Column string
	Shape  status.ShapePolicy
}

/*──────── in-process ───────*/

// InProcessClient runs the status rules inside the engine. Each call gets
// its own random source from the factory.
type InProcessClient struct {
	defaults Defaults
	random   status.SourceFactory
}

func NewInProcessClient(d Defaults, random status.SourceFactory) *InProcessClient {
	if d.Policy == 0 {
		d.Policy = status.PolicyDeterministic
	}
	if d.Column == "" {
		d.Column = status.DefaultColumn
	}
	if random == nil {
		random = status.Seeded(0)
	}
	return &InProcessClient{defaults: d, random: random}
}

func (c *InProcessClient) Transform(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	policy := c.defaults.Policy
	if req.Policy != "" {
		p, err := status.ParsePolicy(req.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	column := c.defaults.Column
	if req.Column != "" {
		column = req.Column
	}
	shape := c.defaults.Shape
	if req.ShortRows != "" {
		s, err := status.ParseShape(req.ShortRows)
		if err != nil {
			return nil, err
		}
		shape = s
	}
	opts := status.Options{Policy: policy, Column: column, Shape: shape}
	if policy == status.PolicyConditionalRandom {
		opts.Random = c.random()
	}

	doc, err := status.TransformDocument(req.CSV, opts)
	if err != nil {
		telemetry.ObserveTransform(policy.String(), outcome(err), nil)
		return nil, err
	}
	resp := &Response{Policy: policy.String(), Counts: map[string]int{}}
	if doc != nil {
		resp.CSV = status.Serialize(doc)
		resp.Rows = doc.Len()
		resp.Counts = doc.Counts(column)
	}
	telemetry.ObserveTransform(resp.Policy, "ok", resp.Counts)
	return resp, nil
}

func (c *InProcessClient) Health(context.Context) error { return nil }
func (c *InProcessClient) Close() error                 { return nil }

func outcome(err error) string {
	switch {
	case errors.Is(err, status.ErrMalformedInput):
		return "malformed"
	case errors.Is(err, status.ErrSchemaMismatch):
		return "schema_mismatch"
	default:
		return "error"
	}
}

/*──────── gRPC ───────*/

// GRPCClient calls a remote StatusTransformer.
type GRPCClient struct {
	conn   *grpc.ClientConn
	svc    apiv1.StatusTransformerClient
	health healthpb.HealthClient

	policy, column, shortRows string
}

func NewGRPCClient(target string, opts ...grpc.DialOption) (*GRPCClient, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &GRPCClient{
		conn:   conn,
		svc:    apiv1.NewStatusTransformerClient(conn),
		health: healthpb.NewHealthClient(conn),
	}, nil
}

// WithDefaults sets the policy, column and short-row handling sent when a
// request leaves them empty; an empty value leaves the remote side's default.
func (c *GRPCClient) WithDefaults(policy, column, shortRows string) *GRPCClient {
	c.policy, c.column, c.shortRows = policy, column, shortRows
	return c
}

func (c *GRPCClient) Transform(ctx context.Context, req Request) (*Response, error) {
	if req.Policy == "" {
		req.Policy = c.policy
	}
	if req.Column == "" {
		req.Column = c.column
	}
	if req.ShortRows == "" {
		req.ShortRows = c.shortRows
	}
	in, err := (&apiv1.TransformRequest{
		CSVContent:   req.CSV,
		Policy:       req.Policy,
		StatusColumn: req.Column,
		ShortRows:    req.ShortRows,
	}).ToStruct()
	if err != nil {
		return nil, err
	}
	out, err := c.svc.Transform(ctx, in)
	if err != nil {
		return nil, err
	}
	reply, err := apiv1.TransformReplyFromStruct(out)
	if err != nil {
		return nil, err
	}
	return &Response{CSV: reply.Data, Policy: req.Policy, Rows: reply.Rows, Counts: reply.Counts}, nil
}

func (c *GRPCClient) Health(ctx context.Context) error {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: apiv1.StatusTransformerService})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("transform: remote status %s", resp.GetStatus())
	}
	return nil
}

func (c *GRPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
