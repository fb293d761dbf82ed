package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/db"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"github.com/shopspring/decimal"
)

type statsRepository struct {
	q *db.Queries
}

func NewStats(pool *pgxpool.Pool) (port.StatsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &statsRepository{q: db.New(pool)}, nil
}

func (r *statsRepository) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	revenue, err := r.q.GetRevenueTotal(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("q.GetRevenueTotal: %w", err)
	}

	return revenue, nil
}

func (r *statsRepository) EstimateCounts(ctx context.Context) (domain.Counts, error) {
	row, err := r.q.EstimateCounts(ctx)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("q.EstimateCounts: %w", err)
	}

	return domain.Counts{Orders: row.Orders, Users: row.Users, Products: row.Products}, nil
}

func (r *statsRepository) CountExact(ctx context.Context) (domain.Counts, error) {
	row, err := r.q.CountExact(ctx)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("q.CountExact: %w", err)
	}

	return domain.Counts{Orders: row.Orders, Users: row.Users, Products: row.Products}, nil
}

func (r *statsRepository) CategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error) {
	rows, err := r.q.GetCategoryBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.GetCategoryBreakdown: %w", err)
	}

	summaries := make([]domain.CategorySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.CategorySummary{
			Category: row.Category,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}

	return summaries, nil
}
