package pipeline

import (
	"fmt"
	"time"

	"ticketcsv/internal/config"
	"ticketcsv/internal/spec"
	"ticketcsv/internal/status"
	"ticketcsv/internal/transform"
	"ticketcsv/sink"
	"ticketcsv/sink/kafka"
	"ticketcsv/sink/stdout"
	"ticketcsv/source"

	_ "ticketcsv/sink/backend"
	sinkfile "ticketcsv/sink/file"
	_ "ticketcsv/source/backend"
	srcfile "ticketcsv/source/file"
)

// CompileFile loads a job YAML and builds its runner.
func CompileFile(path string) (*Runner, error) {
	job, err := config.LoadJobSpec(path)
	if err != nil {
		return nil, err
	}
	return Compile(job)
}

func Compile(job spec.File) (*Runner, error) {
	r := NewRunner()

	/*──────── source ───────*/
	src, err := source.NewAdapter(job.Source.Kind)
	if err != nil {
		return nil, err
	}
	var srcCfg any
	switch job.Source.Kind {
	case "backend":
		if srcCfg, err = config.LoadBackendConfig(job.Source.Config); err != nil {
			return nil, err
		}
	case "file":
		srcCfg = srcfile.Config{Path: job.Source.Path}
	}
	if err := src.Configure(srcCfg); err != nil {
		return nil, fmt.Errorf("source %s: %w", job.Source.Kind, err)
	}
	r.SetSource(src)

	/*──────── transform stage ───────*/
	cli, err := NewTransformer(job.Transform)
	if err != nil {
		return nil, err
	}
	r.SetTransformer(job.Transform.Type, cli, time.Duration(job.Transform.TimeoutMS)*time.Millisecond)

	/*──────── sinks ───────*/
	for _, name := range job.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return nil, err
		}

		switch name {
		case "stdout":
			c := job.SinkConfigs.Stdout
			err = sDrv.Configure(stdout.Config{MaxBytes: c.MaxBytes, Header: c.Header})
		case "file":
			err = sDrv.Configure(sinkfile.Config{Dir: job.SinkConfigs.File.Dir})
		case "kafka":
			c := job.SinkConfigs.Kafka
			err = sDrv.Configure(kafka.Config{
				Brokers:  c.Brokers,
				Topic:    c.Topic,
				Version:  c.Version,
				ClientID: c.ClientID,
				Acks:     c.RequiredAcks,
			})
		case "backend":
			path := job.SinkConfigs.Backend.Config
			if path == "" {
				path = job.Source.Config
			}
			bc, lerr := config.LoadBackendConfig(path)
			if lerr != nil {
				return nil, lerr
			}
			err = sDrv.Configure(bc)
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return nil, fmt.Errorf("sink %s: %w", name, err)
		}

		if ackAware, ok := sDrv.(sink.AckAware); ok {
			ackAware.BindAck(r.Ack)
		}
		r.AddSink(name, sDrv)
	}
	return r, nil
}

// NewTransformer builds the client for the job's transform section.
func NewTransformer(ts spec.TransformSpec) (transform.Client, error) {
	policy, err := status.ParsePolicy(ts.Policy)
	if err != nil {
		return nil, err
	}
	shape, err := status.ParseShape(ts.ShortRows)
	if err != nil {
		return nil, err
	}
	switch ts.Type {
	case "", "inproc":
		d := transform.Defaults{Policy: policy, Column: ts.StatusColumn, Shape: shape}
		return transform.NewInProcessClient(d, status.Seeded(ts.Seed)), nil
	case "grpc":
		if ts.Seed != 0 {
			return nil, fmt.Errorf("transform: seed is not forwarded to a grpc transformer; seed the remote server instead")
		}
		cli, err := transform.NewGRPCClient(ts.Address)
		if err != nil {
			return nil, fmt.Errorf("transform: dial %s: %w", ts.Address, err)
		}
		shortRows := ""
		if ts.ShortRows != "" {
			shortRows = shape.String()
		}
		return cli.WithDefaults(policy.String(), ts.StatusColumn, shortRows), nil
	default:
		return nil, fmt.Errorf("unsupported transformer type %q", ts.Type)
	}
}
