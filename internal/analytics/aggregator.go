// Package analytics derives revenue and catalog statistics from stored
// payments. It never writes.
package analytics

import (
	"context"
	"fmt"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	summaryKey    = "summary"
	categoriesKey = "categories"
)

type Aggregator struct {
	stats  port.StatsRepository
	group  singleflight.Group
	logger *zap.Logger
}

func New(stats port.StatsRepository, logger *zap.Logger) (*Aggregator, error) {
	if stats == nil {
		return nil, fmt.Errorf("stats is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{stats: stats, logger: logger}, nil
}

// Summary returns the exact revenue total and the order, user and product
// counts. Counts come from planner estimates and fall back to exact counting
// when any estimate is unavailable.
func (a *Aggregator) Summary(ctx context.Context) (domain.Summary, error) {
	v, err := a.collapse(ctx, summaryKey, a.summary)
	if err != nil {
		return domain.Summary{}, err
	}

	return v.(domain.Summary), nil
}

// CategoryBreakdown returns quantity and revenue per menu category over all
// purchased items. Items no longer in the catalog are left out.
func (a *Aggregator) CategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error) {
	v, err := a.collapse(ctx, categoriesKey, a.categories)
	if err != nil {
		return nil, err
	}

	// callers sharing one flight must not share the slice
	shared := v.([]domain.CategorySummary)
	out := make([]domain.CategorySummary, len(shared))
	copy(out, shared)

	return out, nil
}

// collapse runs fn once for all concurrent callers of key. The shared call
// is detached from any single caller's cancellation; each caller still stops
// waiting when its own context is done.
func (a *Aggregator) collapse(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)

	ch := a.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	}
}

func (a *Aggregator) summary(ctx context.Context) (any, error) {
	revenue, err := a.stats.RevenueTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: stats.RevenueTotal: %w", domain.ErrStore, err)
	}

	counts, err := a.stats.EstimateCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: stats.EstimateCounts: %w", domain.ErrStore, err)
	}

	if counts.Unknown() {
		a.logger.Debug("count estimates unavailable, counting exactly")

		counts, err = a.stats.CountExact(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: stats.CountExact: %w", domain.ErrStore, err)
		}
	}

	return domain.Summary{RevenueTotal: revenue, Counts: counts}, nil
}

func (a *Aggregator) categories(ctx context.Context) (any, error) {
	summaries, err := a.stats.CategoryBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: stats.CategoryBreakdown: %w", domain.ErrStore, err)
	}

	return summaries, nil
}
