package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the authorization gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
