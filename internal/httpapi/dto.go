package httpapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/settlement"
	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Error string `json:"error"`
}

type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type checkoutRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type checkoutResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type paymentRequest struct {
	Price       *decimal.Decimal `json:"price"`
	CartIDs     []string         `json:"cartIds"`
	MenuItemIDs []string         `json:"menuItemIds"`
	UserEmail   string           `json:"userEmail"`
}

func (r paymentRequest) toInput(email, idempotencyKey string) (in settlement.SettleInput, err error) {
	if r.Price == nil {
		return in, fmt.Errorf("%w: price is required", domain.ErrInvalidRequest)
	}

	in.CartIDs, err = parseIDs("cartIds", r.CartIDs)
	if err != nil {
		return in, err
	}
	in.MenuItemIDs, err = parseIDs("menuItemIds", r.MenuItemIDs)
	if err != nil {
		return in, err
	}

	in.Price = *r.Price
	in.UserEmail = email
	in.IdempotencyKey = idempotencyKey

	return in, nil
}

func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] is not a valid id", domain.ErrInvalidRequest, field, i)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type paymentDTO struct {
	ID            uuid.UUID   `json:"id"`
	UserEmail     string      `json:"userEmail"`
	Price         string      `json:"price"`
	Currency      string      `json:"currency"`
	TransactionID string      `json:"transactionId"`
	CartIDs       []uuid.UUID `json:"cartIds"`
	MenuItemIDs   []uuid.UUID `json:"menuItemIds"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func toPaymentDTO(record domain.PaymentRecord) paymentDTO {
	return paymentDTO{
		ID:            record.ID,
		UserEmail:     record.OwnerEmail,
		Price:         record.Price.Amount.String(),
		Currency:      record.Price.Currency.String(),
		TransactionID: record.TransactionID,
		CartIDs:       record.CartIDs,
		MenuItemIDs:   record.MenuItemIDs,
		CreatedAt:     record.CreatedAt,
	}
}

type deleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

type settleResponse struct {
	PaymentResult *paymentDTO   `json:"paymentResult"`
	DeleteResult  *deleteResult `json:"deleteResult"`
	Error         string        `json:"error,omitempty"`
}

type adminStatsResponse struct {
	Revenue  string `json:"revenue"`
	Orders   int64  `json:"orders"`
	Users    int64  `json:"users"`
	Products int64  `json:"products"`
}

type categoryStatsDTO struct {
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
	Revenue  string `json:"revenue"`
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
