package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	OwnerEmail string
	Entries    []CartEntry
}

type CartEntry struct {
	ID         uuid.UUID
	OwnerEmail string
	MenuItemID uuid.UUID
	// Price is the menu price at the moment the entry was added.
	Price    Money
	Quantity int32

	CreatedAt time.Time
}
