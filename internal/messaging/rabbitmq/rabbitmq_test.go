package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/messaging/rabbitmq"
	"github.com/nikolayk812/bistro/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"go.uber.org/zap/zaptest"
)

type rabbitmqSuite struct {
	suite.Suite

	container *tcrabbitmq.RabbitMQContainer
	conn      *amqp.Connection
	ch        *amqp.Channel
	publisher port.EventPublisher
}

func TestRabbitMQSuite(t *testing.T) {
	suite.Run(t, new(rabbitmqSuite))
}

func (suite *rabbitmqSuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	suite.container, err = tcrabbitmq.Run(ctx, "rabbitmq:4.1-management-alpine")
	suite.Require().NoError(err)

	url, err := suite.container.AmqpURL(ctx)
	suite.Require().NoError(err)

	suite.conn, suite.ch, err = rabbitmq.SetupConn(ctx, url, zaptest.NewLogger(suite.T()))
	suite.Require().NoError(err)

	suite.publisher, err = rabbitmq.NewPublisher(suite.ch)
	suite.Require().NoError(err)
}

func (suite *rabbitmqSuite) TearDownSuite() {
	if suite.conn != nil {
		suite.NoError(suite.conn.Close())
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

// consumer opens its own channel so deliveries and confirms do not share one.
func (suite *rabbitmqSuite) consumer(queue string) *rabbitmq.Subscriber {
	ch, err := suite.conn.Channel()
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = ch.Close() })

	sub, err := rabbitmq.NewSubscriber(ch, queue, zaptest.NewLogger(suite.T()))
	suite.Require().NoError(err)
	suite.Require().NoError(sub.Declare())

	return sub
}

func (suite *rabbitmqSuite) run(sub *rabbitmq.Subscriber, handler rabbitmq.SettledHandler) {
	ctx, cancel := context.WithCancel(suite.T().Context())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		suite.NoError(sub.Consume(ctx, handler))
	}()

	suite.T().Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func settledEvent(t *testing.T, id int64) (domain.OutboxEvent, domain.PaymentSettled) {
	t.Helper()

	settled := domain.PaymentSettled{
		PaymentID:   uuid.New(),
		OwnerEmail:  "guest@example.com",
		Amount:      "12.5",
		Currency:    "USD",
		CartIDs:     []uuid.UUID{uuid.New(), uuid.New()},
		MenuItemIDs: []uuid.UUID{uuid.New()},
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	payload, err := json.Marshal(settled)
	require.NoError(t, err)

	return domain.OutboxEvent{
		ID:          id,
		AggregateID: settled.PaymentID,
		EventType:   domain.EventPaymentSettled,
		Payload:     payload,
		CreatedAt:   settled.CreatedAt,
	}, settled
}

func (suite *rabbitmqSuite) TestPublishConsume() {
	t := suite.T()

	sub := suite.consumer("test.publish-consume")

	received := make(chan domain.PaymentSettled, 1)
	suite.run(sub, func(_ context.Context, event domain.PaymentSettled) error {
		received <- event
		return nil
	})

	event, want := settledEvent(t, 1)
	require.NoError(t, suite.publisher.Publish(t.Context(), event))

	select {
	case got := <-received:
		assert.Equal(t, want.PaymentID, got.PaymentID)
		assert.Equal(t, want.CartIDs, got.CartIDs)
		assert.Equal(t, want.Amount, got.Amount)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for payment.settled")
	}
}

func (suite *rabbitmqSuite) TestPublishBeforeConsumerStarts() {
	t := suite.T()

	event, want := settledEvent(t, 6)
	require.NoError(t, suite.publisher.Publish(t.Context(), event))

	// other tests publish to the same exchange, so skip their events
	received := make(chan domain.PaymentSettled, 64)
	sub := suite.consumer(rabbitmq.RetirementQueue)
	suite.run(sub, func(_ context.Context, event domain.PaymentSettled) error {
		received <- event
		return nil
	})

	timeout := time.After(10 * time.Second)
	for {
		select {
		case got := <-received:
			if got.PaymentID == want.PaymentID {
				assert.Equal(t, want.CartIDs, got.CartIDs)
				return
			}
		case <-timeout:
			t.Fatal("event published before the consumer started was lost")
		}
	}
}

func (suite *rabbitmqSuite) TestHandlerFailureIsRedeliveredOnce() {
	t := suite.T()

	sub := suite.consumer("test.redelivery")

	var calls atomic.Int32
	suite.run(sub, func(context.Context, domain.PaymentSettled) error {
		calls.Add(1)
		return errors.New("store unavailable")
	})

	event, _ := settledEvent(t, 2)
	require.NoError(t, suite.publisher.Publish(t.Context(), event))

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 10*time.Second, 10*time.Millisecond)

	// the second failure drops the message
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(2), calls.Load())
}

func (suite *rabbitmqSuite) TestMalformedPayloadIsDropped() {
	t := suite.T()

	sub := suite.consumer("test.malformed")

	received := make(chan domain.PaymentSettled, 2)
	suite.run(sub, func(_ context.Context, event domain.PaymentSettled) error {
		received <- event
		return nil
	})

	bad := domain.OutboxEvent{ID: 3, EventType: domain.EventPaymentSettled, Payload: []byte("{not json")}
	require.NoError(t, suite.publisher.Publish(t.Context(), bad))

	good, want := settledEvent(t, 4)
	require.NoError(t, suite.publisher.Publish(t.Context(), good))

	select {
	case got := <-received:
		assert.Equal(t, want.PaymentID, got.PaymentID)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for payment.settled")
	}
	assert.Empty(t, received)
}

func (suite *rabbitmqSuite) TestPublishRejectsUntypedEvent() {
	err := suite.publisher.Publish(suite.T().Context(), domain.OutboxEvent{ID: 5})
	suite.EqualError(err, "event[5] has no type")
}
