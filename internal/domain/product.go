package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Stock is the authoritative ceiling for cart
// quantities; it is mutated by catalog management and checkout, never by
// cart operations.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Category    string
	Stock       int32
	ImageURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
