package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/bistro/internal/domain"
)

type MenuRepository interface {
	AddItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (domain.MenuItem, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (bool, error)
}
