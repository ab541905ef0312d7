package repository

import (
	"context"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
	pkgkafka "CandleCache/pkg/kafka"
)

// KafkaPublisher emits refresh events, keyed by symbol so per-symbol ordering
// is preserved across partitions.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka-backed refresh publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishRefresh(ctx context.Context, ev *models.RefreshEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Symbol), ev)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
