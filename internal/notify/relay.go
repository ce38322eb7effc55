package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/segmentio/kafka-go"
)

// messageFetcher is the consumer half of the queue client.
// Satisfied by *kafka.Reader.
type messageFetcher interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Relay consumes the notification topic and forwards every message to the
// chat endpoint. It is the whole job of the relay process.
type Relay struct {
	fetcher messageFetcher
	sender  MessageSender
	logger  *logger.Logger
}

// NewRelay joins the consumer group from cfg and wires the fetched messages
// to sender.
func NewRelay(cfg config.Notifier, sender MessageSender, log *logger.Logger) *Relay {
	log.Debug().
		Strs("brokers", cfg.KafkaBrokers).
		Str("topic", cfg.Topic).
		Str("group", cfg.GroupID).
		Msg("creating notification relay")

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})

	return &Relay{
		fetcher: reader,
		sender:  sender,
		logger:  log,
	}
}

// Run consumes messages until ctx is cancelled. A failed delivery is logged
// and the message is committed anyway so one unreachable endpoint cannot
// stall the topic.
func (r *Relay) Run(ctx context.Context) error {
	for {
		msg, err := r.fetcher.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			r.logger.Err(err).Str("func", "*Relay.Run").Msg("error fetching message")
			return fmt.Errorf("fetching message: %w", err)
		}

		text := string(msg.Value)
		if err := r.sender.Send(ctx, text); err != nil {
			r.logger.Err(err).Str("func", "*Relay.Run").Str("text", text).Msg("error forwarding notification")
		} else {
			r.logger.Info().Str("text", text).Msg("notification forwarded")
		}

		if err := r.fetcher.CommitMessages(ctx, msg); err != nil {
			r.logger.Err(err).Str("func", "*Relay.Run").Msg("error committing message")
		}
	}
}

// Close releases the consumer-group membership.
func (r *Relay) Close() error {
	return r.fetcher.Close()
}
