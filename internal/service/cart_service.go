package service

import (
	"context"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService mediates every cart mutation through the stock ledger: cart
// quantities are reservation intents bounded by currently observed stock,
// never holds. Stock is re-read at each mutation, and the read-merge-write of
// an add runs inside one transaction so concurrent adds cannot overshoot.
type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	tx       TxScope
	logger   *zap.Logger
}

func NewCartService(carts port.CartRepository, products port.ProductRepository, tx TxScope, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		tx:       tx,
		logger:   logger,
	}
}

// GetCart returns the user's cart view, creating an empty cart on first
// access. Totals are recomputed fresh on every call.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (domain.CartView, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("carts.GetOrCreate: %w", err)
	}

	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("carts.ListItems: %w", err)
	}

	return domain.NewCartView(cart, items), nil
}

// AddToCart adds quantity of a product to the user's cart, merging with any
// existing line for the same product. The merged quantity is validated
// against stock re-read inside the same transaction; a failed check leaves
// the cart untouched.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.NewValidationError("Quantity must be a positive integer")
	}

	var added domain.CartItem
	err := s.tx.Execute(ctx, func(repos TxRepositories) error {
		stock, found, err := repos.Products().CurrentStock(ctx, productID)
		if err != nil {
			return fmt.Errorf("products.CurrentStock: %w", err)
		}
		if !found {
			return domain.ErrProductNotFound
		}
		if stock < quantity {
			return domain.ErrInsufficientStock
		}

		cart, err := repos.Carts().GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.GetOrCreate: %w", err)
		}

		// The merged total is the authoritative check: the store refuses
		// the write when existing + requested would exceed current stock.
		item, ok, err := repos.Carts().AddItemQuantity(ctx, cart.ID, productID, quantity, stock)
		if err != nil {
			return fmt.Errorf("carts.AddItemQuantity: %w", err)
		}
		if !ok {
			return domain.ErrInsufficientStock
		}

		added = item
		return nil
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	product, found, err := s.products.GetByID(ctx, productID)
	if err == nil && found {
		added.Product = &product
	}

	return added, nil
}

// UpdateCartItem replaces an item's quantity after verifying that the item
// belongs to the acting user. The new quantity is absolute, not additive.
func (s *CartService) UpdateCartItem(ctx context.Context, userID, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, domain.NewValidationError("Quantity must be a positive integer")
	}

	var updated domain.CartItem
	err := s.tx.Execute(ctx, func(repos TxRepositories) error {
		item, err := authorizeItem(ctx, repos.Carts(), userID, itemID)
		if err != nil {
			return err
		}

		stock, found, err := repos.Products().CurrentStock(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("products.CurrentStock: %w", err)
		}
		if !found {
			return domain.ErrProductNotFound
		}
		if stock < quantity {
			return domain.ErrInsufficientStock
		}

		updated, err = repos.Carts().UpdateItemQuantity(ctx, itemID, quantity)
		if err != nil {
			return fmt.Errorf("carts.UpdateItemQuantity: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.CartItem{}, err
	}

	product, found, err := s.products.GetByID(ctx, updated.ProductID)
	if err == nil && found {
		updated.Product = &product
	}

	return updated, nil
}

// RemoveFromCart deletes a single item after the same ownership check as
// update. Removing a non-existent or foreign item is an error, never a
// silent success.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.tx.Execute(ctx, func(repos TxRepositories) error {
		if _, err := authorizeItem(ctx, repos.Carts(), userID, itemID); err != nil {
			return err
		}

		deleted, err := repos.Carts().DeleteItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf("carts.DeleteItem: %w", err)
		}
		if !deleted {
			return domain.ErrCartItemNotFound
		}

		return nil
	})
}

// ClearCart deletes all items from the user's cart. A user without a cart
// is a no-op, not an error, so the call is idempotent.
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, found, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("carts.FindByUserID: %w", err)
	}
	if !found {
		return nil
	}

	if err := s.carts.DeleteAllItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("carts.DeleteAllItems: %w", err)
	}

	s.logger.Debug("cart cleared", zap.String("cart_id", cart.ID.String()))

	return nil
}

// authorizeItem resolves an item and verifies the acting user owns its parent
// cart. Item identifiers are opaque and enumerable, so ownership is checked
// on every item read or mutation, not only on creation.
func authorizeItem(ctx context.Context, carts port.CartRepository, userID, itemID uuid.UUID) (domain.CartItem, error) {
	item, ownerID, found, err := carts.FindItemByID(ctx, itemID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("carts.FindItemByID: %w", err)
	}
	if !found {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	if ownerID != userID {
		return domain.CartItem{}, domain.ErrForbidden
	}

	return item, nil
}
