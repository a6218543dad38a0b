package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicUserEvents         = "user_events"
	TopicCartEvents         = "cart_events"
	TopicProductEvents      = "product_events"
	TopicPurchaseEvents     = "purchase_events"
	TopicNotificationEvents = "notification_events"
	TopicReportEvents       = "report_events"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
