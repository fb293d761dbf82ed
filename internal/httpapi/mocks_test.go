package httpapi_test

import (
	"context"
	"errors"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/settlement"
	"github.com/shopspring/decimal"
)

var errMock = errors.New("mock not configured")

type MockSettler struct {
	SettleFunc   func(ctx context.Context, in settlement.SettleInput) (settlement.SettleResult, error)
	CheckoutFunc func(ctx context.Context, price decimal.Decimal) (string, error)
}

func (m *MockSettler) Settle(ctx context.Context, in settlement.SettleInput) (settlement.SettleResult, error) {
	if m.SettleFunc != nil {
		return m.SettleFunc(ctx, in)
	}
	return settlement.SettleResult{}, errMock
}

func (m *MockSettler) CreateCheckoutSession(ctx context.Context, price decimal.Decimal) (string, error) {
	if m.CheckoutFunc != nil {
		return m.CheckoutFunc(ctx, price)
	}
	return "", errMock
}

type MockAnalytics struct {
	SummaryFunc    func(ctx context.Context) (domain.Summary, error)
	CategoriesFunc func(ctx context.Context) ([]domain.CategorySummary, error)
}

func (m *MockAnalytics) Summary(ctx context.Context) (domain.Summary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return domain.Summary{}, errMock
}

func (m *MockAnalytics) CategoryBreakdown(ctx context.Context) ([]domain.CategorySummary, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, errMock
}

// MockRoles grants role admin to the listed emails only.
type MockRoles struct {
	Admins map[string]bool
}

func (m *MockRoles) Require(_ context.Context, email string, role domain.Role) error {
	if role == domain.RoleAdmin && m.Admins[email] {
		return nil
	}
	return domain.ErrForbidden
}

type MockPayments struct {
	ListFunc func(ctx context.Context, ownerEmail string) ([]domain.PaymentRecord, error)
}

func (m *MockPayments) ListPayments(ctx context.Context, ownerEmail string) ([]domain.PaymentRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerEmail)
	}
	return nil, nil
}

type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(context.Context) error {
	return m.Err
}
