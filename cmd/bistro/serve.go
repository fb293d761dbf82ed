package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/bistro/internal/analytics"
	"github.com/nikolayk812/bistro/internal/auth"
	"github.com/nikolayk812/bistro/internal/config"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/gateway"
	"github.com/nikolayk812/bistro/internal/httpapi"
	"github.com/nikolayk812/bistro/internal/idempotency"
	"github.com/nikolayk812/bistro/internal/messaging/rabbitmq"
	"github.com/nikolayk812/bistro/internal/repository"
	"github.com/nikolayk812/bistro/internal/settlement"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the outbox relay and the cart retirement consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath, config.Config.Validate)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return err
	}

	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	carts, err := repository.NewCart(pool)
	if err != nil {
		return fmt.Errorf("repository.NewCart: %w", err)
	}
	payments, err := repository.NewPayment(pool)
	if err != nil {
		return fmt.Errorf("repository.NewPayment: %w", err)
	}
	users, err := repository.NewUser(pool)
	if err != nil {
		return fmt.Errorf("repository.NewUser: %w", err)
	}
	stats, err := repository.NewStats(pool)
	if err != nil {
		return fmt.Errorf("repository.NewStats: %w", err)
	}

	stripeGateway, err := gateway.NewStripe(cfg.StripeSecretKey)
	if err != nil {
		return fmt.Errorf("gateway.NewStripe: %w", err)
	}

	opts := []settlement.Option{settlement.WithLogger(logger.Named("settlement"))}

	redisClient, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()

		store, err := idempotency.NewRedis(redisClient, cfg.IdempotencyTTL)
		if err != nil {
			return fmt.Errorf("idempotency.NewRedis: %w", err)
		}
		opts = append(opts, settlement.WithIdempotency(store))
	} else {
		logger.Info("REDIS_URL is empty, idempotency keys are ignored")
	}

	coordinator, err := settlement.New(payments, carts, stripeGateway, unit, opts...)
	if err != nil {
		return fmt.Errorf("settlement.New: %w", err)
	}

	aggregator, err := analytics.New(stats, logger.Named("analytics"))
	if err != nil {
		return fmt.Errorf("analytics.New: %w", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("auth.NewTokens: %w", err)
	}
	roles, err := auth.NewRoleChecker(users)
	if err != nil {
		return fmt.Errorf("auth.NewRoleChecker: %w", err)
	}

	conn, publishCh, err := rabbitmq.SetupConn(ctx, cfg.AMQPURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	relay, err := newRelay(cfg, pool, publishCh, logger)
	if err != nil {
		return err
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("conn.Channel: %w", err)
	}
	subscriber, err := rabbitmq.NewSubscriber(consumeCh, rabbitmq.RetirementQueue, logger.Named("consumer"))
	if err != nil {
		return fmt.Errorf("rabbitmq.NewSubscriber: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	api, err := httpapi.NewServer(httpapi.Deps{
		Settler:   coordinator,
		Analytics: aggregator,
		Tokens:    tokens,
		Roles:     roles,
		Payments:  payments,
		Health:    pool,
		Logger:    logger.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("httpapi.NewServer: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return relay.Run(gctx)
	})

	g.Go(func() error {
		return subscriber.Consume(gctx, func(ctx context.Context, event domain.PaymentSettled) error {
			_, err := coordinator.Retire(ctx, event)
			return err
		})
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
