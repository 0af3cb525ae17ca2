package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	apiv1 "ticketcsv/api/v1"
	"ticketcsv/sink"
)

func TestDriver_PushPublishesCSV(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != "id,status\r\n1,OPEN\r\n" {
			return errors.New("unexpected payload " + string(val))
		}
		return nil
	})

	d := &driver{cfg: Config{Brokers: []string{"b:9092"}, Topic: "tickets.statuses"}, p: sp}
	var acks []sink.Ack
	d.BindAck(func(a sink.Ack) { acks = append(acks, a) })

	f := &apiv1.Frame{ID: "run-9", CSV: "id,status\r\n1,OPEN\r\n", Policy: "deterministic", Rows: 1}
	if err := d.Push(context.Background(), f); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if len(acks) != 1 || acks[0].Sink != "kafka" || acks[0].FrameID != "run-9" {
		t.Fatalf("unexpected acks %+v", acks)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDriver_PushFailureNotAcked(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	d := &driver{cfg: Config{Topic: "t"}, p: sp}
	acked := false
	d.BindAck(func(sink.Ack) { acked = true })

	if err := d.Push(context.Background(), &apiv1.Frame{ID: "x", CSV: "a\r\n"}); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("want ErrOutOfBrokers, got %v", err)
	}
	if acked {
		t.Fatal("failed publish must not ack")
	}
	_ = d.Close()
}

func acks(n int) *int { return &n }

func TestSaramaConfig(t *testing.T) {
	sc, err := saramaConfig(Config{Version: "3.6.0", ClientID: "ticketcsv", Acks: acks(-1)})
	if err != nil {
		t.Fatalf("saramaConfig: %v", err)
	}
	if sc.Producer.RequiredAcks != sarama.WaitForAll || !sc.Producer.Return.Successes || sc.ClientID != "ticketcsv" {
		t.Fatalf("unexpected producer config %+v", sc.Producer)
	}
	for _, tt := range []struct {
		acks *int
		want sarama.RequiredAcks
	}{
		{nil, sarama.WaitForLocal},
		{acks(0), sarama.NoResponse},
		{acks(1), sarama.WaitForLocal},
		{acks(-1), sarama.WaitForAll},
	} {
		sc, err := saramaConfig(Config{Acks: tt.acks})
		if err != nil {
			t.Fatalf("saramaConfig: %v", err)
		}
		if sc.Producer.RequiredAcks != tt.want {
			t.Fatalf("acks %v: got %d want %d", tt.acks, sc.Producer.RequiredAcks, tt.want)
		}
	}
	if _, err := saramaConfig(Config{Version: "not-a-version"}); err == nil {
		t.Fatal("expected version parse error")
	}
}

func TestDriver_ConfigureValidates(t *testing.T) {
	if err := (&driver{}).Configure(Config{Topic: "t"}); err == nil {
		t.Fatal("expected error without brokers")
	}
	if err := (&driver{}).Configure("x"); err == nil {
		t.Fatal("expected error for foreign config")
	}
}
