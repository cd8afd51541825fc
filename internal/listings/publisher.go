package listings

import (
	"context"
	"fmt"
	"time"

	"findmyrave/internal/shared/config"
	"findmyrave/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher announces moderation decisions to downstream consumers
type Publisher interface {
	PublishModeration(ctx context.Context, event ModerationEvent) error
	Close() error
}

// KafkaPublisher writes moderation events to a single topic, keyed by listing id
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher connects a synchronous producer to the configured brokers
func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	// Same listing, same partition: decisions stay ordered per listing
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaPublisherWithProducer(producer, cfg.ModerationTopic), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishModeration(ctx context.Context, event ModerationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal moderation event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ListingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("listing." + event.Decision)},
			{Key: []byte("content_type"), Value: []byte("application/json")},
		},
		Timestamp: event.OccurredAt,
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to publish moderation event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured
type LogPublisher struct {
	logger *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) PublishModeration(ctx context.Context, event ModerationEvent) error {
	p.logger.InfoContext(ctx, "Moderation event",
		"listing_id", event.ListingID,
		"decision", event.Decision,
		"reviewed_by", event.ReviewedBy,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
