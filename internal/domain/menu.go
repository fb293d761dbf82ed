package domain

import (
	"time"

	"github.com/google/uuid"
)

type MenuItem struct {
	ID       uuid.UUID
	Name     string
	Category string
	Price    Money

	CreatedAt time.Time
}
