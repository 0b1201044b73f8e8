package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/rebornlabs/wastelog/internal/models"
)

// KafkaPublisher pushes every committed LogRecord to a Kafka topic as JSON,
// keyed by record id. Downstream consumers (dashboards, the summary feed)
// see writes in their own time; ordering relative to local reads is not
// promised anywhere.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaPublisher(config models.KafkaConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	if config.SessionTimeoutMs > 0 {
		saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	}

	brokerList := strings.Split(config.BrokerList, ",")
	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	slog.Info("Sarama producer created", "brokers", brokerList, "topic", config.Topic)
	return &KafkaPublisher{producer: producer, topic: config.Topic}, nil
}

func (p *KafkaPublisher) PublishCommitted(ctx context.Context, record *models.LogRecord) error {
	msg, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding log %s: %w", record.ID, err)
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(record.ID),
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		return fmt.Errorf("sending log %s to topic %s: %w", record.ID, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
