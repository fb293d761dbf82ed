package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role

	CreatedAt time.Time
}
