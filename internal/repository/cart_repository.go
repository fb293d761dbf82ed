package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/db"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) (port.CartRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &cartRepository{q: db.New(pool)}, nil
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: db.New(tx)}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerEmail string) (domain.Cart, error) {
	if ownerEmail == "" {
		return domain.Cart{}, fmt.Errorf("ownerEmail is empty")
	}

	rows, err := r.q.GetCart(ctx, ownerEmail)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	entries, err := mapGetCartRowsToDomain(ownerEmail, rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartRowsToDomain: %w", err)
	}

	return domain.Cart{
		OwnerEmail: ownerEmail,
		Entries:    entries,
	}, nil
}

func (r *cartRepository) AddEntry(ctx context.Context, entry domain.CartEntry) (domain.CartEntry, error) {
	if entry.OwnerEmail == "" {
		return domain.CartEntry{}, fmt.Errorf("ownerEmail is empty")
	}
	if entry.Price.IsNegative() {
		return domain.CartEntry{}, fmt.Errorf("price is negative")
	}

	quantity := entry.Quantity
	if quantity == 0 {
		quantity = 1
	}

	row, err := r.q.AddEntry(ctx, db.AddEntryParams{
		OwnerEmail:    entry.OwnerEmail,
		MenuItemID:    entry.MenuItemID,
		PriceAmount:   entry.Price.Amount,
		PriceCurrency: entry.Price.Currency.String(),
		Quantity:      quantity,
	})
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("q.AddEntry: %w", err)
	}

	entry.ID = row.ID
	entry.Quantity = quantity
	entry.CreatedAt = row.CreatedAt

	return entry, nil
}

func (r *cartRepository) DeleteEntry(ctx context.Context, id uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteEntry(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.DeleteEntry: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteEntries(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	rowsAffected, err := r.q.DeleteEntries(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteEntries: %w", err)
	}

	return rowsAffected, nil
}

func mapGetCartRowToDomain(ownerEmail string, row db.GetCartRow) (domain.CartEntry, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartEntry{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartEntry{
		ID:         row.ID,
		OwnerEmail: ownerEmail,
		MenuItemID: row.MenuItemID,
		Price:      domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Quantity:   row.Quantity,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func mapGetCartRowsToDomain(ownerEmail string, rows []db.GetCartRow) ([]domain.CartEntry, error) {
	var entries []domain.CartEntry

	for _, row := range rows {
		entry, err := mapGetCartRowToDomain(ownerEmail, row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartRowToDomain: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
