package port

import (
	"context"

	"github.com/nikolayk812/bistro/internal/domain"
)

type PublishFunc func(ctx context.Context, event domain.OutboxEvent) error

type OutboxRepository interface {
	// PublishPending claims up to limit unpublished events, hands them to
	// publish in order and marks the ones that went through. It stops at the
	// first publish error and returns it next to the published count.
	PublishPending(ctx context.Context, limit int32, publish PublishFunc) (int, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
}
