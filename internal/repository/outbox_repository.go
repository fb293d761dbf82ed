package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/db"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
)

type outboxRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOutbox(pool *pgxpool.Pool) (port.OutboxRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &outboxRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func (r *outboxRepository) PublishPending(ctx context.Context, limit int32, publish port.PublishFunc) (int, error) {
	if limit <= 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	if publish == nil {
		return 0, fmt.Errorf("publish is nil")
	}

	// events published before a failure are still marked
	var publishErr error

	published, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (int, error) {
		rows, err := q.ClaimOutboxEvents(ctx, limit)
		if err != nil {
			return 0, fmt.Errorf("q.ClaimOutboxEvents: %w", err)
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			if err := publish(ctx, mapOutboxRowToDomain(row)); err != nil {
				publishErr = fmt.Errorf("publish event[%d]: %w", row.ID, err)
				break
			}
			ids = append(ids, row.ID)
		}

		if len(ids) == 0 {
			return 0, nil
		}

		if err := q.MarkOutboxPublished(ctx, ids); err != nil {
			return 0, fmt.Errorf("q.MarkOutboxPublished: %w", err)
		}

		return len(ids), nil
	})
	if err != nil {
		return 0, err
	}

	return published, publishErr
}

func mapOutboxRowToDomain(row db.ClaimOutboxEventsRow) domain.OutboxEvent {
	return domain.OutboxEvent{
		ID:          row.ID,
		AggregateID: row.AggregateID,
		EventType:   row.EventType,
		Payload:     row.Payload,
		CreatedAt:   row.CreatedAt,
	}
}
