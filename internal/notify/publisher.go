// Package notify carries reminder notifications from the server to the
// Telegram chat bot through a message queue. The server side publishes plain
// text messages to a topic; a separate relay process consumes the topic and
// forwards each message to the Telegram Bot API.
package notify

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the producer half of the queue client.
// Satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes notification messages to the configured topic.
type Publisher struct {
	writer messageWriter
	logger *logger.Logger
}

// NewPublisher connects a Publisher to the brokers and topic from cfg.
func NewPublisher(cfg config.Notifier, log *logger.Logger) *Publisher {
	log.Debug().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.Topic).Msg("creating notification publisher")

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		logger: log,
	}
}

// Publish sends one plain text notification. The message value is the text
// itself; the relay forwards it verbatim.
func (p *Publisher) Publish(ctx context.Context, text string) error {
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: []byte(text)}); err != nil {
		p.logger.Err(err).Str("func", "*Publisher.Publish").Msg("error publishing notification")
		return fmt.Errorf("publishing notification: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
