package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nikolayk812/bistro/internal/auth"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]domain.User
	err   error
}

func (f fakeUsers) CreateUser(_ context.Context, user domain.User) (domain.User, error) {
	f.users[user.Email] = user
	return user, nil
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}

	user, ok := f.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

func TestRoleChecker_Require(t *testing.T) {
	users := fakeUsers{users: map[string]domain.User{
		"admin@example.com": {Email: "admin@example.com", Role: domain.RoleAdmin},
		"user@example.com":  {Email: "user@example.com", Role: domain.RoleUser},
	}}

	tests := []struct {
		name      string
		users     fakeUsers
		email     string
		wantErrIs error
		wantError string
	}{
		{
			name:  "admin: ok",
			users: users,
			email: "admin@example.com",
		},
		{
			name:      "regular user: forbidden",
			users:     users,
			email:     "user@example.com",
			wantErrIs: domain.ErrForbidden,
			wantError: "forbidden: user[user@example.com] is not admin",
		},
		{
			name:      "unknown user: forbidden",
			users:     users,
			email:     "ghost@example.com",
			wantErrIs: domain.ErrForbidden,
			wantError: "forbidden: user[ghost@example.com] is unknown",
		},
		{
			name:      "store failure: store error",
			users:     fakeUsers{err: errors.New("timeout")},
			email:     "admin@example.com",
			wantErrIs: domain.ErrStore,
			wantError: "store error: users.GetUserByEmail: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, err := auth.NewRoleChecker(tt.users)
			require.NoError(t, err)

			err = checker.Require(t.Context(), tt.email, domain.RoleAdmin)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
