package port

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/google/uuid"
)

// CartRepository owns the user→cart and cart→items mappings.
// Implementations must keep (cartID, productID) unique and one cart per user.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating it atomically if absent.
	// Safe under concurrent first calls for the same user.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (domain.Cart, error)

	// FindByUserID returns the user's cart without creating one.
	FindByUserID(ctx context.Context, userID uuid.UUID) (domain.Cart, bool, error)

	// FindItem returns the single item row for the (cart, product) pair, if any.
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error)

	// FindItemByID returns an item together with the userID owning its parent
	// cart, for ownership verification.
	FindItemByID(ctx context.Context, itemID uuid.UUID) (domain.CartItem, uuid.UUID, bool, error)

	// AddItemQuantity creates the item row with the given quantity, or
	// atomically increments the existing row's quantity, refusing the write
	// when the merged quantity would exceed maxStock. Returns false when the
	// ceiling was hit and nothing was written.
	AddItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity, maxStock int32) (domain.CartItem, bool, error)

	// UpdateItemQuantity replaces the item's quantity.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error)

	// DeleteItem removes a single item. Returns false if no row was deleted.
	DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error)

	// DeleteAllItems empties the cart.
	DeleteAllItems(ctx context.Context, cartID uuid.UUID) error

	// ListItems returns the cart's items joined with their products,
	// ordered by creation time.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
}
