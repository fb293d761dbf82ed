package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bistro/internal/db"
	"github.com/nikolayk812/bistro/internal/domain"
	"github.com/nikolayk812/bistro/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) (port.UserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &userRepository{q: db.New(pool)}, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(role),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("q.CreateUser: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapUserToDomain(row), nil
}

func mapUserToDomain(row db.User) domain.User {
	return domain.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      domain.Role(row.Role),
		CreatedAt: row.CreatedAt,
	}
}
