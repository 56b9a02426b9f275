package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	portsevents "github.com/tipnest/tipnest_backend/internal/core/ports/events"
)

// Publisher writes ledger events to Kafka. Topics are addressed per message so one
// writer serves every stream the application emits.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka-backed event publisher.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

var _ portsevents.Publisher = (*Publisher)(nil)

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
