package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
	"golang.org/x/text/currency"
)

type PaymentRepository interface {
	// CreatePayment stores the record together with its payment.settled
	// outbox event.
	CreatePayment(ctx context.Context, record domain.PaymentRecord) (domain.PaymentRecord, error)
	GetPayment(ctx context.Context, id uuid.UUID) (domain.PaymentRecord, error)
	ListPayments(ctx context.Context, ownerEmail string) ([]domain.PaymentRecord, error)
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, unit currency.Unit) (domain.PaymentIntent, error)
}
