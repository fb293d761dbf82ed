package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/config"
	"github.com/nikolayk812/bistro/internal/messaging/rabbitmq"
	"github.com/nikolayk812/bistro/internal/outbox"
	"github.com/nikolayk812/bistro/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func relayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "relay",
		Short: "Publish recorded settlement events to RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath, config.Config.RequireBroker)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pool, err := openPool(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			conn, ch, err := rabbitmq.SetupConn(ctx, cfg.AMQPURL, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			relay, err := newRelay(cfg, pool, ch, logger)
			if err != nil {
				return err
			}

			return relay.Run(ctx)
		},
	}
}

func newRelay(cfg config.Config, pool *pgxpool.Pool, ch *amqp.Channel, logger *zap.Logger) (*outbox.Relay, error) {
	repo, err := repository.NewOutbox(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewOutbox: %w", err)
	}

	publisher, err := rabbitmq.NewPublisher(ch)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq.NewPublisher: %w", err)
	}

	return outbox.NewRelay(repo, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize, logger.Named("outbox"))
}
