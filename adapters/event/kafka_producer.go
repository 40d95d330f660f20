package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/meetapp/internal/config"
	"github.com/khoahotran/meetapp/pkg/logger"
)

const (
	TopicFileEvents = "file.events"
)

type FileEventType string

const (
	FileEventTypeUploaded FileEventType = "file.uploaded"
)

type FileEventPayload struct {
	EventType FileEventType `json:"event_type"`
	FileID    int64         `json:"file_id"`
	UserID    int64         `json:"user_id"`
	PublicID  string        `json:"public_id"`
	URL       string        `json:"url"`
	EmittedAt time.Time     `json:"emitted_at"`
}

type KafkaProducerClient struct {
	FileEventsWriter *kafka.Writer
	logger           logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	fileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicFileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{FileEventsWriter: fileWriter, logger: log}, nil
}

// PublishFileEvent keys messages by file id so events of one file stay ordered.
func (c *KafkaProducerClient) PublishFileEvent(ctx context.Context, payload FileEventPayload) error {
	if payload.EmittedAt.IsZero() {
		payload.EmittedAt = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal file event: %w", err)
	}
	return c.FileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(payload.FileID, 10)),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.FileEventsWriter != nil {
		if err := c.FileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close file events writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
