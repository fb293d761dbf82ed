package port

import "context"

type IdempotencyStore interface {
	// Reserve returns false when the key is already taken.
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
