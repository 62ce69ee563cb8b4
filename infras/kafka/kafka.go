package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"houserental/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

var errEmptyTopic = errors.New("kafka topic is required")

// Message is a keyed event. Value is encoded as JSON. Messages with the same key land on
// the same partition, so events of one booking stay ordered.
type Message struct {
	Key   string
	Value any
}

func (m Message) encode(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: value,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) error
	Close() error
}

type producer struct {
	writer *kafkaGo.Writer
}

type disabledClient struct{}

func (disabledClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("messages", len(messages)).Msg("Kafka disabled, dropping messages.")

	return nil
}

func (disabledClient) Close() error {
	return nil
}

// New returns a producer for the configured brokers, or a client that drops every message
// when Kafka is disabled.
func New(config *config.Config) Client {
	kafkaConfig := config.Kafka

	if !kafkaConfig.Enable || len(kafkaConfig.Brokers) == 0 {
		log.Info().Msg("Kafka disabled")

		return disabledClient{}
	}

	transport := &kafkaGo.Transport{}
	if kafkaConfig.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: kafkaConfig.SASL.Username,
			Password: kafkaConfig.SASL.Password,
		}
	}

	log.Info().Strs("brokers", kafkaConfig.Brokers).Msg("Kafka producer initialized")

	return &producer{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(kafkaConfig.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
		},
	}
}

func (p *producer) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	if topic == "" {
		return errEmptyTopic
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.encode(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to encode Kafka message.")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("messages", len(msgs)).Msg("Sent messages to Kafka.")

	return nil
}

// Close flushes pending writes.
func (p *producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
