package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/techfolio/backend/internal/config"
)

const TopicPortfolioEvents = "portfolio.events"

type PortfolioEventType string

const (
	PortfolioEventTypeSaved     PortfolioEventType = "portfolio.saved"
	PortfolioEventTypePublished PortfolioEventType = "portfolio.published"
)

type PortfolioEventPayload struct {
	EventType PortfolioEventType `json:"event_type"`
	OwnerID   uuid.UUID          `json:"owner_id"`
}

type KafkaProducerClient struct {
	PortfolioEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{PortfolioEventsWriter: writer}, nil
}

func (c *KafkaProducerClient) PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal portfolio event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.OwnerID.String()),
		Value: value,
	}
	if err := c.PortfolioEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("cannot publish portfolio event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
}
