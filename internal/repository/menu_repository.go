package repository

import (
	"context"
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

type menuRepository struct {
	q *db.Queries
}

func NewMenu(pool *pgxpool.Pool) (port.MenuRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &menuRepository{q: db.New(pool)}, nil
}

func (r *menuRepository) AddItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if item.Name == "" {
		return domain.MenuItem{}, fmt.Errorf("name is empty")
	}
	if item.Category == "" {
		return domain.MenuItem{}, fmt.Errorf("category is empty")
	}
	if item.Price.IsNegative() {
		return domain.MenuItem{}, fmt.Errorf("price is negative")
	}

	row, err := r.q.AddMenuItem(ctx, db.AddMenuItemParams{
		Name:          item.Name,
		Category:      item.Category,
		PriceAmount:   item.Price.Amount,
		PriceCurrency: item.Price.Currency.String(),
	})
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("q.AddMenuItem: %w", err)
	}

	return mapMenuItemToDomain(row)
}

func (r *menuRepository) GetItem(ctx context.Context, id uuid.UUID) (domain.MenuItem, error) {
	row, err := r.q.GetMenuItem(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, fmt.Errorf("menu item[%s]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("q.GetMenuItem: %w", err)
	}

	return mapMenuItemToDomain(row)
}

func (r *menuRepository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.q.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListMenuItems: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(rows))
	for _, row := range rows {
		item, err := mapMenuItemToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapMenuItemToDomain: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *menuRepository) DeleteItem(ctx context.Context, id uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteMenuItem(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.DeleteMenuItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapMenuItemToDomain(row db.MenuItem) (domain.MenuItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.MenuItem{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		CreatedAt: row.CreatedAt,
	}, nil
}
