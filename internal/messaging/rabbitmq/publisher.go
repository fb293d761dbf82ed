package rabbitmq

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publisher struct {
	ch *amqp.Channel
}

// NewPublisher expects a channel in confirm mode, as opened by SetupConn.
func NewPublisher(ch *amqp.Channel) (port.EventPublisher, error) {
	if ch == nil {
		return nil, fmt.Errorf("channel is nil")
	}

	return &publisher{ch: ch}, nil
}

// Publish sends the event payload routed by its type and waits for the
// broker to confirm it.
func (p *publisher) Publish(ctx context.Context, event domain.OutboxEvent) error {
	if event.EventType == "" {
		return fmt.Errorf("event[%d] has no type", event.ID)
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx,
		ExchangeName,
		event.EventType, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    strconv.FormatInt(event.ID, 10),
			Type:         event.EventType,
			Timestamp:    event.CreatedAt,
			Headers: amqp.Table{
				"aggregate_id": event.AggregateID.String(),
			},
			Body: event.Payload,
		},
	)
	if err != nil {
		return fmt.Errorf("ch.PublishWithDeferredConfirmWithContext: %w", err)
	}
	if confirm == nil {
		return fmt.Errorf("channel is not in confirm mode")
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm.WaitContext: %w", err)
	}
	if !acked {
		return fmt.Errorf("event[%d] nacked by broker", event.ID)
	}

	return nil
}
