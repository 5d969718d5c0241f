package storage

import (
	"context"
	"encoding/json"
	"errors"

	"mfood/pos-svc/internal/domain"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// Publish keys messages by restaurant so one tenant's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RestaurantID.String()),
		Value: payload,
	})
}

type NATSPublisher struct {
	Conn   *nats.Conn
	Prefix string
}

func NewNATSPublisher(conn *nats.Conn, prefix string) *NATSPublisher {
	return &NATSPublisher{Conn: conn, Prefix: prefix}
}

func (p *NATSPublisher) Subject(event domain.Event) string {
	return p.Prefix + "." + event.RestaurantID.String() + "." + event.Type
}

func (p *NATSPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Conn.Publish(p.Subject(event), payload)
}

type EventSink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// FanOut delivers an event to every sink and joins their errors.
type FanOut struct {
	sinks []EventSink
}

func NewFanOut(sinks ...EventSink) *FanOut {
	f := &FanOut{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *FanOut) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
