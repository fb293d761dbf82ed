package domain

import (
	"time"

	"github.com/google/uuid"
)

const EventPaymentSettled = "payment.settled"

// PaymentRecord is written once per settlement and never changed afterwards.
type PaymentRecord struct {
	ID         uuid.UUID
	OwnerEmail string
	// Price equals the amount charged through the payment gateway.
	Price         Money
	TransactionID string
	MenuItemIDs   []uuid.UUID
	CartIDs       []uuid.UUID

	CreatedAt time.Time
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentSettled is the outbox payload emitted for every stored PaymentRecord.
type PaymentSettled struct {
	PaymentID   uuid.UUID   `json:"paymentId"`
	OwnerEmail  string      `json:"ownerEmail"`
	Amount      string      `json:"amount"`
	Currency    string      `json:"currency"`
	CartIDs     []uuid.UUID `json:"cartIds"`
	MenuItemIDs []uuid.UUID `json:"menuItemIds"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func NewPaymentSettled(record PaymentRecord) PaymentSettled {
	return PaymentSettled{
		PaymentID:   record.ID,
		OwnerEmail:  record.OwnerEmail,
		Amount:      record.Price.Amount.String(),
		Currency:    record.Price.Currency.String(),
		CartIDs:     record.CartIDs,
		MenuItemIDs: record.MenuItemIDs,
		CreatedAt:   record.CreatedAt,
	}
}

type OutboxEvent struct {
	ID          int64
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte

	CreatedAt time.Time
}
