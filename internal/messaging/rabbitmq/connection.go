// Package rabbitmq carries settlement events over a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/bistro/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName = "bistro.settlements"
	ExchangeType = "topic"

	// RetirementQueue feeds the consumer that deletes leftover cart entries.
	RetirementQueue = "bistro.cart-retirement"

	dialAttempts = 5
	dialBackoff  = 2 * time.Second
)

// SetupConn dials url with a few retries, opens a channel in confirm mode
// and declares the settlements exchange together with the retirement queue,
// so events published before any consumer starts are kept.
func SetupConn(ctx context.Context, url string, logger *zap.Logger) (*amqp.Connection, *amqp.Channel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("dial rabbitmq", zap.Int("attempt", attempt), zap.Error(err))

		if attempt == dialAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("conn.Channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ch.Confirm: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		ExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ch.ExchangeDeclare: %w", err)
	}

	if err := declareQueue(ch, RetirementQueue); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}

// declareQueue creates a durable queue bound to payment.settled events.
func declareQueue(ch *amqp.Channel, name string) error {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	if err := ch.QueueBind(q.Name, domain.EventPaymentSettled, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("ch.QueueBind: %w", err)
	}

	return nil
}
