package repository

import (
	"context"
	"fmt"

	"EvalPull/internal/domain/models"
	domrepo "EvalPull/internal/domain/repository"
	pkgkafka "EvalPull/pkg/kafka"
)

// KafkaWeightPublisher pushes weight sets to a Kafka topic, keyed by asset so
// one asset's updates stay ordered on one partition.
type KafkaWeightPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaWeightPublisher(producer *pkgkafka.Producer, topic string) domrepo.WeightPublisher {
	return &KafkaWeightPublisher{producer: producer, topic: topic}
}

func (p *KafkaWeightPublisher) Publish(ctx context.Context, weights []models.ModelWeight) error {
	if len(weights) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(weights))
	for _, w := range weights {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(w.Asset),
			Value: w,
		})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish weights: %w", err)
	}
	return nil
}

func (p *KafkaWeightPublisher) Close() error {
	return p.producer.Close()
}
