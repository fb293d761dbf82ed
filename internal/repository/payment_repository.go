package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/db"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"golang.org/x/text/currency"
)

type paymentRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPayment(pool *pgxpool.Pool) (port.PaymentRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &paymentRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewPaymentWithTx(tx pgx.Tx) port.PaymentRepository {
	return &paymentRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, record domain.PaymentRecord) (domain.PaymentRecord, error) {
	if record.OwnerEmail == "" {
		return domain.PaymentRecord{}, fmt.Errorf("ownerEmail is empty")
	}
	if len(record.CartIDs) == 0 {
		return domain.PaymentRecord{}, fmt.Errorf("cartIDs is empty")
	}
	if record.Price.IsNegative() {
		return domain.PaymentRecord{}, fmt.Errorf("price is negative")
	}

	menuItemIDs := record.MenuItemIDs
	if menuItemIDs == nil {
		menuItemIDs = []uuid.UUID{}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.PaymentRecord, error) {
		row, err := q.CreatePayment(ctx, db.CreatePaymentParams{
			OwnerEmail:    record.OwnerEmail,
			PriceAmount:   record.Price.Amount,
			PriceCurrency: record.Price.Currency.String(),
			TransactionID: record.TransactionID,
			MenuItemIds:   menuItemIDs,
			CartIds:       record.CartIDs,
		})
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("q.CreatePayment: %w", err)
		}

		created, err := mapPaymentToDomain(row)
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("mapPaymentToDomain: %w", err)
		}

		payload, err := json.Marshal(domain.NewPaymentSettled(created))
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("json.Marshal: %w", err)
		}

		err = q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
			AggregateID: created.ID,
			EventType:   domain.EventPaymentSettled,
			Payload:     payload,
		})
		if err != nil {
			return domain.PaymentRecord{}, fmt.Errorf("q.InsertOutboxEvent: %w", err)
		}

		return created, nil
	})
}

func (r *paymentRepository) GetPayment(ctx context.Context, id uuid.UUID) (domain.PaymentRecord, error) {
	row, err := r.q.GetPayment(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PaymentRecord{}, fmt.Errorf("payment[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("q.GetPayment: %w", err)
	}

	return mapPaymentToDomain(row)
}

func (r *paymentRepository) ListPayments(ctx context.Context, ownerEmail string) ([]domain.PaymentRecord, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("ownerEmail is empty")
	}

	rows, err := r.q.ListPaymentsByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("q.ListPaymentsByOwner: %w", err)
	}

	records := make([]domain.PaymentRecord, 0, len(rows))
	for _, row := range rows {
		record, err := mapPaymentToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapPaymentToDomain: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func mapPaymentToDomain(row db.Payment) (domain.PaymentRecord, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.PaymentRecord{
		ID:            row.ID,
		OwnerEmail:    row.OwnerEmail,
		Price:         domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		TransactionID: row.TransactionID,
		MenuItemIDs:   row.MenuItemIds,
		CartIDs:       row.CartIds,
		CreatedAt:     row.CreatedAt,
	}, nil
}
