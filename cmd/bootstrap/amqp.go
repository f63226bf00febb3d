package bootstrap

import (
	"context"
	"log/slog"

	"playa-admin/internal/infra/mailqueue"
	"playa-admin/internal/pkg/config"

	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewMailPublisher,
		func(cfg config.Config, logger *slog.Logger) *mailqueue.LogMailer {
			return mailqueue.NewLogMailer(cfg.Mail, logger)
		},
	),
	fx.Invoke(StartMailConsumer),
)

func NewMailPublisher(lc fx.Lifecycle, cfg config.Config) (*mailqueue.Publisher, error) {
	publisher, cleanup, err := mailqueue.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return publisher, nil
}

func StartMailConsumer(lc fx.Lifecycle, cfg config.Config, mailer *mailqueue.LogMailer, logger *slog.Logger) {
	consumer := mailqueue.NewConsumer(cfg.AMQP, mailer, logger)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go consumer.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
