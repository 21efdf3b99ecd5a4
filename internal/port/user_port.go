package port

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, bool, error)
	GetByEmail(ctx context.Context, email string) (domain.User, bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (domain.User, error)
}
