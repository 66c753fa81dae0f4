package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/demand-estimator-service/internal/models"
	"github.com/cypherlabdev/demand-estimator-service/internal/service"
)

// KafkaConsumer consumes booking snapshots from Kafka and estimates them
type KafkaConsumer struct {
	reader    *kafka.Reader
	estimator service.Estimator
	cache     service.Cache
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "booking_snapshots"
	GroupID string   // e.g., "demand-estimator"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	estimator service.Estimator,
	cache service.Cache,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1e3,  // 1KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 1000, // Commit every 1 second
	})

	return &KafkaConsumer{
		reader:    reader,
		estimator: estimator,
		cache:     cache,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage processes a single Kafka message
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaBookingSnapshotMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Int("snapshot_count", len(kafkaMsg.Snapshots)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processing booking snapshot batch")

	snapshots := make([]*models.BookingSnapshot, len(kafkaMsg.Snapshots))
	for i := range kafkaMsg.Snapshots {
		snapshots[i] = &kafkaMsg.Snapshots[i]
	}

	results, err := c.estimator.EstimateBatch(snapshots)
	if err != nil {
		return fmt.Errorf("failed to estimate snapshots: %w", err)
	}

	if err := c.cache.SetBatch(ctx, results); err != nil {
		return fmt.Errorf("failed to cache estimation results: %w", err)
	}

	c.logger.Info().
		Int("input_count", len(snapshots)).
		Int("output_count", len(results)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processed and cached estimation results")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
