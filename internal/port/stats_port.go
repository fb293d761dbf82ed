package port

import (
	"context"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/shopspring/decimal"
)

type StatsRepository interface {
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	EstimateCounts(ctx context.Context) (domain.Counts, error)
	CountExact(ctx context.Context) (domain.Counts, error)
	CategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error)
}
