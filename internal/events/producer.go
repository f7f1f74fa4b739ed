package events

import (
	"context"
	"fmt"
	"time"

	"busbook/internal/shared/config"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events
type Producer interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka booking-event producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig(cfg config.KafkaConfig) *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          cfg.Brokers,
		Topic:            cfg.Topic,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// kafkaProducer publishes booking events to Kafka
type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaProducer creates a Kafka booking-event producer
func NewKafkaProducer(config *KafkaProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites

	// Idempotent writes require a single in-flight request
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one trip's events ordered on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		config:   config,
	}, nil
}

// Publish sends a single booking event to Kafka
func (p *kafkaProducer) Publish(ctx context.Context, event BookingEvent) error {
	event.fill()

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

// Close shuts down the producer
func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}

// noopProducer drops events; used when no brokers are configured
type noopProducer struct{}

// NewNoopProducer creates a producer that discards all events
func NewNoopProducer() Producer {
	return noopProducer{}
}

func (noopProducer) Publish(ctx context.Context, event BookingEvent) error { return nil }
func (noopProducer) Close() error                                          { return nil }
