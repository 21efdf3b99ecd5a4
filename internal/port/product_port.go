package port

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/google/uuid"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// ProductRepository is the catalog store. The cart engine only uses the
// read path; stock is decremented exclusively at checkout.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, bool, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// CurrentStock re-reads the product's available quantity. Cart mutations
	// must call this at mutation time instead of trusting earlier reads.
	CurrentStock(ctx context.Context, id uuid.UUID) (int32, bool, error)

	// DecrementStock subtracts quantity from stock, refusing to go below
	// zero. Returns false when stock was insufficient and nothing changed.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int32) (bool, error)
}
