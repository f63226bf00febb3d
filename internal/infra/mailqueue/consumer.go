package mailqueue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"playa-admin/internal/pkg/config"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer delivers one invitation mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendInvitation(ctx context.Context, msg commands.InvitationMessage) error
}

// Consumer drains the invitation queue and hands each message to the Mailer.
// It reconnects with capped exponential backoff and stops when ctx ends.
type Consumer struct {
	url    string
	mailer Mailer
	logger *slog.Logger
}

func NewConsumer(cfg config.AMQPConfig, mailer Mailer, logger *slog.Logger) *Consumer {
	return &Consumer{url: cfg.URL, mailer: mailer, logger: logger}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.logger.Warn("invitation consumer dial failed",
				"error", err,
				"retry_in", backoff.String())
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("invitation consumer stopped, reconnecting", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open amqp channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(invitationQueue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "failed to declare invitation queue")
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return errs.Wrap(err, "failed to set channel qos")
	}

	deliveries, err := ch.Consume(invitationQueue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "failed to start consuming")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(ctx, d.Body); err != nil {
				c.logger.Error("invitation mail failed", "error", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var msg commands.InvitationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return errs.Wrap(err, "failed to unmarshal invitation message")
	}
	return c.mailer.SendInvitation(ctx, msg)
}
