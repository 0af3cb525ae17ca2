package kafka

import (
	"context"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/sink"
)

// Config is the YAML form of the Kafka sink.
type Config struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	Version  string   `yaml:"version"`
	ClientID string   `yaml:"client_id"`
	Acks     *int     `yaml:"required_acks"` // unset = leader only, 0 = no response, -1 = all replicas
}

// driver publishes each transformed CSV as a single message keyed by the
// frame id. The producer is synchronous so an ack means the broker has it.
type driver struct {
	cfg Config
	p   sarama.SyncProducer
	ack sink.EmitFn
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config")
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return fmt.Errorf("kafka-sink: brokers and topic are required")
	}
	d.cfg = cfg

	sc, err := saramaConfig(cfg)
	if err != nil {
		return err
	}
	d.p, err = sarama.NewSyncProducer(cfg.Brokers, sc)
	return err
}

func saramaConfig(cfg Config) (*sarama.Config, error) {
	sc := sarama.NewConfig()
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return nil, err
		}
		sc.Version = ver
	}
	if cfg.ClientID != "" {
		sc.ClientID = cfg.ClientID
	}
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	if cfg.Acks != nil {
		sc.Producer.RequiredAcks = sarama.RequiredAcks(*cfg.Acks)
	}
	sc.Producer.Return.Successes = true
	// a ticket export can exceed the 1MB default
	sc.Producer.MaxMessageBytes = 16 << 20
	return sc, nil
}

func (d *driver) Push(_ context.Context, f *apiv1.Frame) error {
	msg := &sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(f.ID),
		Value: sarama.StringEncoder(f.CSV),
		Headers: []sarama.RecordHeader{
			{Key: []byte("policy"), Value: []byte(f.Policy)},
			{Key: []byte("rows"), Value: []byte(strconv.Itoa(f.Rows))},
			{Key: []byte("content-type"), Value: []byte("text/csv")},
		},
	}
	part, off, err := d.p.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("kafka-sink: %w", err)
	}
	if d.ack != nil {
		d.ack(sink.Ack{FrameID: f.ID, Sink: "kafka", Detail: fmt.Sprintf("%s[%d]@%d", d.cfg.Topic, part, off)})
	}
	return nil
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	return d.p.Close()
}

func (d *driver) BindAck(fn sink.EmitFn) { d.ack = fn }

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
