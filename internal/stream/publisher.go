// Package stream publishes accepted platform uploads to Kafka so
// downstream consumers (warehouse loaders, alerting) see every replace as
// it happens.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// envelope is the message shape written per platform replace.
type envelope struct {
	Platform   models.Platform      `json:"platform"`
	Count      int                  `json:"count"`
	ReplacedAt string               `json:"replaced_at"`
	Records    []models.OrderRecord `json:"records"`
}

// Publisher writes one message per accepted upload to a Kafka topic. It
// implements the buffer's sink interface.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPublisher(cfg models.KafkaConfig, logger zerolog.Logger) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if cfg.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(cfg.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Consumer.Group.Session.Timeout = 45 * time.Second
	}

	brokerList := strings.Split(cfg.BrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	logger.Info().Strs("brokers", brokerList).Str("topic", cfg.Topic).Msg("kafka publisher ready")
	return &Publisher{
		producer: producer,
		topic:    cfg.Topic,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// ReplacePlatform publishes the new record set for a platform. The
// platform name keys the message so per-platform ordering holds across
// partitions.
func (p *Publisher) ReplacePlatform(ctx context.Context, platform models.Platform, records []models.OrderRecord) error {
	if p.producer == nil {
		return fmt.Errorf("kafka publisher is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(envelope{
		Platform:   platform,
		Count:      len(records),
		ReplacedAt: p.now().Format(time.RFC3339),
		Records:    records,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s replace message: %w", platform, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(platform),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to send %s replace message: %w", platform, err)
	}

	p.logger.Debug().
		Str("platform", string(platform)).
		Int("records", len(records)).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("published platform replace")
	return nil
}

func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
