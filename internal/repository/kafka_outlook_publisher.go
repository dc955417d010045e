package repository

import (
	"context"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgkafka "MacroPulse/pkg/kafka"
	"MacroPulse/pkg/util"
)

// KafkaOutlookPublisher emits evaluated outlooks to a Kafka topic. Messages
// are keyed by evaluation day so replays of the same day compact cleanly.
type KafkaOutlookPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaOutlookPublisher creates the Kafka outlook publisher.
func NewKafkaOutlookPublisher(producer *pkgkafka.Producer, topic string) drepo.OutlookPublisher {
	return &KafkaOutlookPublisher{producer: producer, topic: topic}
}

func (p *KafkaOutlookPublisher) PublishOutlook(ctx context.Context, o *models.Outlook) error {
	key := []byte(util.FormatDay(o.EvaluatedAt))
	return p.producer.Publish(ctx, p.topic, key, o)
}

func (p *KafkaOutlookPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
