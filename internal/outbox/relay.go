// Package outbox moves recorded events from the store to the message broker.
package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/bistro/internal/port"
	"go.uber.org/zap"
)

type Relay struct {
	repo      port.OutboxRepository
	publisher port.EventPublisher
	interval  time.Duration
	batchSize int32
	logger    *zap.Logger
}

func NewRelay(
	repo port.OutboxRepository,
	publisher port.EventPublisher,
	interval time.Duration,
	batchSize int32,
	logger *zap.Logger,
) (*Relay, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if publisher == nil {
		return nil, fmt.Errorf("publisher is nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batchSize must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Relay{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}, nil
}

// Run polls until ctx is done. Failed rounds are logged and retried on the
// next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("interval", r.interval),
		zap.Int32("batch_size", r.batchSize),
	)

	for {
		if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("outbox flush", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Flush publishes pending events batch by batch until the outbox is drained
// or a publish fails.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var total int

	for {
		published, err := r.repo.PublishPending(ctx, r.batchSize, r.publisher.Publish)
		total += published
		if err != nil {
			return total, fmt.Errorf("repo.PublishPending: %w", err)
		}

		if published < int(r.batchSize) {
			break
		}
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
	}

	if total > 0 {
		r.logger.Debug("outbox flushed", zap.Int("published", total))
	}

	return total, nil
}
