package kafka

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/segmentio/kafka-go"
)

func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:        config.KafkaConfig.BrokerTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer     messageWriter
	maxRetries int
	backoff    time.Duration
}

func CreateProducer(writer messageWriter) *Producer {
	return &Producer{
		writer:     writer,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// Publish writes one keyed message, retrying with a linearly growing pause.
func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	var err error
	for i := 0; i < p.maxRetries; i++ {
		err = p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: value,
		})
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return err
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopProducer is used when no broker is configured.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, key string, value []byte) error {
	return nil
}

func (NopProducer) Close() error {
	return nil
}
