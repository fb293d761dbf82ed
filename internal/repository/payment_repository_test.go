package repository_test

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
	"github.com/nikolayk812/bistro/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type paymentRepositorySuite struct {
	suite.Suite

	repo port.PaymentRepository
	pool *pgxpool.Pool
}

func TestPaymentRepositorySuite(t *testing.T) {
	suite.Run(t, new(paymentRepositorySuite))
}

func (suite *paymentRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var err error
	_, suite.pool, err = startPool(ctx)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewPayment(suite.pool)
	suite.Require().NoError(err)
}

func (suite *paymentRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *paymentRepositorySuite) TestCreatePayment() {
	defer suite.deleteAll()

	noMenuItems := randomPaymentRecord()
	noMenuItems.MenuItemIDs = nil

	noCartIDs := randomPaymentRecord()
	noCartIDs.CartIDs = nil

	noOwner := randomPaymentRecord()
	noOwner.OwnerEmail = ""

	finePrice := randomPaymentRecord()
	finePrice.Price.Amount = decimal.RequireFromString("12.34567")

	largePrice := randomPaymentRecord()
	largePrice.Price.Amount = decimal.RequireFromString("20000000000.123456")

	tests := []struct {
		name      string
		record    domain.PaymentRecord
		wantError string
	}{
		{
			name:   "create payment: ok",
			record: randomPaymentRecord(),
		},
		{
			name:   "create payment without menu items: ok",
			record: noMenuItems,
		},
		{
			name:   "create payment with sub-cent price: ok",
			record: finePrice,
		},
		{
			name:   "create payment with large price: ok",
			record: largePrice,
		},
		{
			name:      "create payment without cart ids: error",
			record:    noCartIDs,
			wantError: "cartIDs is empty",
		},
		{
			name:      "create payment with empty owner email: error",
			record:    noOwner,
			wantError: "ownerEmail is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.repo.CreatePayment(ctx, tt.record)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assertPaymentRecord(t, tt.record, created)

			got, err := suite.repo.GetPayment(ctx, created.ID)
			require.NoError(t, err)
			assertPaymentRecord(t, tt.record, got)

			suite.assertOutboxEvent(created)
		})
	}
}

func (suite *paymentRepositorySuite) TestCreatePayment_KeepsMenuItemOrderAndDuplicates() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	a, b := uuid.New(), uuid.New()

	record := randomPaymentRecord()
	record.MenuItemIDs = []uuid.UUID{b, a, b}

	created, err := suite.repo.CreatePayment(ctx, record)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{b, a, b}, created.MenuItemIDs)
}

func (suite *paymentRepositorySuite) TestGetPayment_NotFound() {
	_, err := suite.repo.GetPayment(suite.T().Context(), uuid.New())
	suite.Require().ErrorIs(err, domain.ErrNotFound)
}

func (suite *paymentRepositorySuite) TestListPayments() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	email := gofakeit.Email()

	for range 3 {
		record := randomPaymentRecord()
		record.OwnerEmail = email
		_, err := suite.repo.CreatePayment(ctx, record)
		require.NoError(t, err)
	}

	_, err := suite.repo.CreatePayment(ctx, randomPaymentRecord())
	require.NoError(t, err)

	records, err := suite.repo.ListPayments(ctx, email)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CreatedAt.After(records[i-1].CreatedAt))
	}

	_, err = suite.repo.ListPayments(ctx, "")
	require.EqualError(t, err, "ownerEmail is empty")
}

func (suite *paymentRepositorySuite) TestCreatePayment_WithTx_Rollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	created, err := repository.NewPaymentWithTx(tx).CreatePayment(ctx, randomPaymentRecord())
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.repo.GetPayment(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var outboxCount int
	err = suite.pool.QueryRow(ctx, "SELECT count(*) FROM outbox WHERE aggregate_id = $1", created.ID).Scan(&outboxCount)
	require.NoError(t, err)
	assert.Zero(t, outboxCount)
}

func (suite *paymentRepositorySuite) assertOutboxEvent(created domain.PaymentRecord) {
	t := suite.T()
	ctx := t.Context()

	var (
		eventType string
		payload   []byte
	)
	err := suite.pool.QueryRow(ctx,
		"SELECT event_type, payload FROM outbox WHERE aggregate_id = $1", created.ID,
	).Scan(&eventType, &payload)
	require.NoError(t, err)

	assert.Equal(t, domain.EventPaymentSettled, eventType)

	var event domain.PaymentSettled
	require.NoError(t, json.Unmarshal(payload, &event))

	assert.Equal(t, created.ID, event.PaymentID)
	assert.Equal(t, created.OwnerEmail, event.OwnerEmail)
	assert.Equal(t, created.CartIDs, event.CartIDs)
	assert.True(t, created.Price.Amount.Equal(decimal.RequireFromString(event.Amount)))
}

func (suite *paymentRepositorySuite) deleteAll() {
	err := truncateAll(suite.T().Context(), suite.pool)
	suite.NoError(err)
}

func randomPaymentRecord() domain.PaymentRecord {
	return domain.PaymentRecord{
		OwnerEmail: gofakeit.Email(),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 500)),
			Currency: currency.USD,
		},
		TransactionID: "pi_" + gofakeit.LetterN(24),
		MenuItemIDs:   randomIDs(gofakeit.IntRange(1, 4)),
		CartIDs:       randomIDs(gofakeit.IntRange(1, 4)),
	}
}
