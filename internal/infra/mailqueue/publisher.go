package mailqueue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"playa-admin/internal/pkg/config"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

const invitationQueue = "invitation.email"

// Publisher pushes invitation mails onto a durable RabbitMQ queue. The
// channel is reopened lazily after broker hiccups.
type Publisher struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(cfg config.AMQPConfig) (*Publisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to dial amqp broker")
	}

	p := &Publisher{conn: conn}
	if _, err := p.channel(); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = conn.Close() }
	return p, cleanup, nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open amqp channel")
	}
	if _, err := ch.QueueDeclare(invitationQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, errs.Wrap(err, "failed to declare invitation queue")
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) PublishInvitation(ctx context.Context, msg commands.InvitationMessage) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to marshal invitation message")
	}

	err = ch.PublishWithContext(ctx, "", invitationQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish invitation message")
	}
	return nil
}
