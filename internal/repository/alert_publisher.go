package repository

import (
	"context"

	"VolSentry/internal/domain/models"
	"VolSentry/internal/domain/repository"
	pkgkafka "VolSentry/pkg/kafka"
)

// KafkaAlertPublisher fans fired alerts out to a Kafka topic for
// downstream consumers. Publishing is best-effort; the alert decision is
// already spent when it fails.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertPublisher creates a Kafka alert publisher.
func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, ev *models.AlertEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Kind), ev)
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
