package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/bistro/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type SettledHandler func(ctx context.Context, event domain.PaymentSettled) error

type Subscriber struct {
	ch       *amqp.Channel
	queue    string
	prefetch int
	logger   *zap.Logger
}

func NewSubscriber(ch *amqp.Channel, queue string, logger *zap.Logger) (*Subscriber, error) {
	if ch == nil {
		return nil, fmt.Errorf("channel is nil")
	}
	if queue == "" {
		return nil, fmt.Errorf("queue is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Subscriber{ch: ch, queue: queue, prefetch: 16, logger: logger}, nil
}

// Declare creates the durable queue and binds it to payment.settled events.
// It is safe to call before any event is published.
func (s *Subscriber) Declare() error {
	return declareQueue(s.ch, s.queue)
}

// Consume delivers payment.settled events to handler until ctx is done or
// the channel closes. Undecodable messages are dropped. A failed message is
// requeued once and dropped when it fails again.
func (s *Subscriber) Consume(ctx context.Context, handler SettledHandler) error {
	if handler == nil {
		return fmt.Errorf("handler is nil")
	}

	if err := s.Declare(); err != nil {
		return err
	}

	if err := s.ch.Qos(s.prefetch, 0, false); err != nil {
		return fmt.Errorf("ch.Qos: %w", err)
	}

	msgs, err := s.ch.ConsumeWithContext(ctx,
		s.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("ch.ConsumeWithContext: %w", err)
	}

	s.logger.Info("consuming", zap.String("queue", s.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("deliveries channel closed")
			}
			s.handle(ctx, d, handler)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, d amqp.Delivery, handler SettledHandler) {
	logger := s.logger.With(zap.String("message_id", d.MessageId))

	var event domain.PaymentSettled
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.Error("decode payment.settled", zap.Error(err))
		s.settle(logger, d.Nack(false, false))
		return
	}

	if err := handler(ctx, event); err != nil {
		logger.Warn("handle payment.settled",
			zap.String("payment_id", event.PaymentID.String()),
			zap.Error(err),
		)
		s.settle(logger, d.Nack(false, !d.Redelivered))
		return
	}

	s.settle(logger, d.Ack(false))
}

func (s *Subscriber) settle(logger *zap.Logger, err error) {
	if err != nil {
		logger.Warn("acknowledge delivery", zap.Error(err))
	}
}
