package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_menu_items.up.sql",
			"../migrations/02_cart_entries.up.sql",
			"../migrations/03_users.up.sql",
			"../migrations/04_payments.up.sql",
			"../migrations/05_outbox.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func startPool(ctx context.Context) (*postgres.PostgresContainer, *pgxpool.Pool, error) {
	container, connStr, err := startPostgres(ctx)
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return container, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	return container, pool, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE cart_entries, menu_items, users, payments, outbox CASCADE")
	return err
}

func randomEmail() string {
	return gofakeit.Email()
}

func randomCartEntry(ownerEmail string) domain.CartEntry {
	return domain.CartEntry{
		OwnerEmail: ownerEmail,
		MenuItemID: uuid.MustParse(gofakeit.UUID()),
		Price:      randomMoney(),
		Quantity:   int32(gofakeit.IntRange(1, 5)),
	}
}

func randomMenuItem(category string) domain.MenuItem {
	return domain.MenuItem{
		Name:     gofakeit.Dessert(),
		Category: category,
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
			Currency: currency.USD,
		},
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func randomIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for range n {
		ids = append(ids, uuid.MustParse(gofakeit.UUID()))
	}
	return ids
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func assertCartEntry(t *testing.T, expected, actual domain.CartEntry) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartEntry{}, "ID", "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}

func assertPaymentRecord(t *testing.T, expected, actual domain.PaymentRecord) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.PaymentRecord{}, "ID", "CreatedAt"),
		cmpopts.EquateEmpty(),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEqual(t, uuid.Nil, actual.ID)
	assert.False(t, actual.CreatedAt.IsZero())
}
