package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
)

type RoleChecker struct {
	users port.UserRepository
}

func NewRoleChecker(users port.UserRepository) (*RoleChecker, error) {
	if users == nil {
		return nil, fmt.Errorf("users is nil")
	}

	return &RoleChecker{users: users}, nil
}

// Require returns nil only when the user behind email holds role. Unknown
// users are forbidden.
func (c *RoleChecker) Require(ctx context.Context, email string, role domain.Role) error {
	user, err := c.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: user[%s] is unknown", domain.ErrForbidden, email)
	}
	if err != nil {
		return fmt.Errorf("%w: users.GetUserByEmail: %w", domain.ErrStore, err)
	}

	if user.Role != role {
		return fmt.Errorf("%w: user[%s] is not %s", domain.ErrForbidden, email, role)
	}

	return nil
}
