package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerEmail string) (domain.Cart, error)
	AddEntry(ctx context.Context, entry domain.CartEntry) (domain.CartEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteEntries removes every entry whose id is in ids and reports how
	// many rows were actually removed. Unknown ids are skipped.
	DeleteEntries(ctx context.Context, ids []uuid.UUID) (int64, error)
}
