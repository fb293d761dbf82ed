// Package settlement turns cart entries into a payment record and retires
// the entries it paid for.
package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

type Coordinator struct {
	payments    port.PaymentRepository
	carts       port.CartRepository
	gateway     port.PaymentGateway
	idempotency port.IdempotencyStore
	currency    currency.Unit
	logger      *zap.Logger
}

type Option func(*Coordinator)

// WithIdempotency enables duplicate detection for inputs carrying an
// IdempotencyKey. Without it keys are ignored.
func WithIdempotency(store port.IdempotencyStore) Option {
	return func(c *Coordinator) {
		c.idempotency = store
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func New(
	payments port.PaymentRepository,
	carts port.CartRepository,
	gateway port.PaymentGateway,
	unit currency.Unit,
	opts ...Option,
) (*Coordinator, error) {
	if payments == nil {
		return nil, fmt.Errorf("payments is nil")
	}
	if carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}
	if gateway == nil {
		return nil, fmt.Errorf("gateway is nil")
	}

	c := &Coordinator{
		payments: payments,
		carts:    carts,
		gateway:  gateway,
		currency: unit,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type SettleInput struct {
	UserEmail   string
	Price       decimal.Decimal
	CartIDs     []uuid.UUID
	MenuItemIDs []uuid.UUID
	// IdempotencyKey is optional; empty means every call settles.
	IdempotencyKey string
}

func (in SettleInput) Validate() error {
	if in.UserEmail == "" {
		return fmt.Errorf("%w: userEmail is empty", domain.ErrInvalidRequest)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price is negative", domain.ErrInvalidRequest)
	}
	if len(in.CartIDs) == 0 {
		return fmt.Errorf("%w: cartIds is empty", domain.ErrInvalidRequest)
	}
	for i, id := range in.CartIDs {
		if id == uuid.Nil {
			return fmt.Errorf("%w: cartIds[%d] is not a valid id", domain.ErrInvalidRequest, i)
		}
	}
	for i, id := range in.MenuItemIDs {
		if id == uuid.Nil {
			return fmt.Errorf("%w: menuItemIds[%d] is not a valid id", domain.ErrInvalidRequest, i)
		}
	}

	return nil
}

type SettleResult struct {
	Payment      domain.PaymentRecord
	DeletedCount int64
}

// CleanupError reports a payment that was recorded while its cart entries
// could not be retired. The payment is not rolled back.
type CleanupError struct {
	PaymentID uuid.UUID
	Err       error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("payment[%s] recorded, cart cleanup failed: %v", e.PaymentID, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// Settle charges the price, records the payment and deletes the referenced
// cart entries, in that order. On a *CleanupError the returned result still
// carries the stored payment.
func (c *Coordinator) Settle(ctx context.Context, in SettleInput) (SettleResult, error) {
	if err := in.Validate(); err != nil {
		return SettleResult{}, err
	}

	price := domain.Money{Amount: in.Price, Currency: c.currency}

	amount, err := price.MinorUnits()
	if err != nil {
		return SettleResult{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	logger := c.logger.With(zap.String("user_email", in.UserEmail))

	// release gives the idempotency key back; it is only called while no
	// payment has been stored yet.
	release := func() {}
	if in.IdempotencyKey != "" && c.idempotency != nil {
		key := in.UserEmail + ":" + in.IdempotencyKey

		reserved, err := c.idempotency.Reserve(ctx, key)
		if err != nil {
			return SettleResult{}, fmt.Errorf("%w: idempotency.Reserve: %w", domain.ErrStore, err)
		}
		if !reserved {
			return SettleResult{}, fmt.Errorf("%w: idempotency key[%s] already used", domain.ErrDuplicateSubmission, in.IdempotencyKey)
		}

		release = func() {
			if err := c.idempotency.Release(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn("release idempotency key", zap.String("key", in.IdempotencyKey), zap.Error(err))
			}
		}
	}

	intent, err := c.gateway.CreateIntent(ctx, amount, c.currency)
	if err != nil {
		release()
		return SettleResult{}, gatewayErr(err)
	}

	record, err := c.payments.CreatePayment(ctx, domain.PaymentRecord{
		OwnerEmail:    in.UserEmail,
		Price:         price,
		TransactionID: intent.ID,
		MenuItemIDs:   in.MenuItemIDs,
		CartIDs:       in.CartIDs,
	})
	if err != nil {
		release()
		return SettleResult{}, fmt.Errorf("%w: payments.CreatePayment: %w", domain.ErrStore, err)
	}

	logger = logger.With(zap.String("payment_id", record.ID.String()))

	deleted, err := c.carts.DeleteEntries(ctx, in.CartIDs)
	if err != nil {
		logger.Error("cart cleanup after payment", zap.Int("cart_ids", len(in.CartIDs)), zap.Error(err))

		return SettleResult{Payment: record}, &CleanupError{
			PaymentID: record.ID,
			Err:       fmt.Errorf("%w: carts.DeleteEntries: %w", domain.ErrStore, err),
		}
	}

	logger.Info("payment settled",
		zap.String("price", price.String()),
		zap.Int64("amount_minor", amount),
		zap.Int64("cart_entries_deleted", deleted),
	)

	return SettleResult{Payment: record, DeletedCount: deleted}, nil
}

// CreateCheckoutSession creates a payment intent for price and returns its
// client secret.
func (c *Coordinator) CreateCheckoutSession(ctx context.Context, price decimal.Decimal) (string, error) {
	if price.IsNegative() {
		return "", fmt.Errorf("%w: price is negative", domain.ErrInvalidRequest)
	}

	amount, err := domain.Money{Amount: price, Currency: c.currency}.MinorUnits()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	intent, err := c.gateway.CreateIntent(ctx, amount, c.currency)
	if err != nil {
		return "", gatewayErr(err)
	}

	return intent.ClientSecret, nil
}

// Retire deletes the cart entries of an already settled payment. Safe to
// repeat: entries that are gone are skipped.
func (c *Coordinator) Retire(ctx context.Context, event domain.PaymentSettled) (int64, error) {
	if len(event.CartIDs) == 0 {
		return 0, nil
	}

	deleted, err := c.carts.DeleteEntries(ctx, event.CartIDs)
	if err != nil {
		return 0, fmt.Errorf("%w: carts.DeleteEntries: %w", domain.ErrStore, err)
	}

	if deleted > 0 {
		c.logger.Info("retired leftover cart entries",
			zap.String("payment_id", event.PaymentID.String()),
			zap.Int64("cart_entries_deleted", deleted),
		)
	}

	return deleted, nil
}

func gatewayErr(err error) error {
	if errors.Is(err, domain.ErrPaymentGateway) || errors.Is(err, domain.ErrInvalidRequest) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPaymentGateway, err)
}
