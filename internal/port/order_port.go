package port

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/google/uuid"
)

type OrderRepository interface {
	// Create persists the order together with its items.
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, bool, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}
