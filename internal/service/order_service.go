package service

import (
	"context"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService turns carts into orders. Checkout is the only place stock is
// actually decremented; cart quantities on their own never hold inventory.
type OrderService struct {
	orders port.OrderRepository
	carts  port.CartRepository
	tx     TxScope
	logger *zap.Logger
}

func NewOrderService(orders port.OrderRepository, carts port.CartRepository, tx TxScope, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		carts:  carts,
		tx:     tx,
		logger: logger,
	}
}

// Checkout snapshots the user's cart into an order, decrements stock for
// every line and empties the cart, all in one transaction. If any line no
// longer fits current stock the whole checkout fails and nothing changes.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (domain.Order, error) {
	var order domain.Order
	err := s.tx.Execute(ctx, func(repos TxRepositories) error {
		cart, found, err := repos.Carts().FindByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.FindByUserID: %w", err)
		}
		if !found {
			return domain.ErrEmptyCart
		}

		items, err := repos.Carts().ListItems(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("carts.ListItems: %w", err)
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			ok, err := repos.Products().DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("products.DecrementStock: %w", err)
			}
			if !ok {
				return domain.ErrInsufficientStock
			}

			orderItems = append(orderItems, domain.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Price:       item.Product.Price,
				Quantity:    item.Quantity,
			})
		}

		view := domain.NewCartView(cart, items)

		order, err = repos.Orders().Create(ctx, domain.Order{
			UserID: userID,
			Status: domain.OrderStatusPending,
			Total:  view.Total,
			Items:  orderItems,
		})
		if err != nil {
			return fmt.Errorf("orders.Create: %w", err)
		}

		if err := repos.Carts().DeleteAllItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("carts.DeleteAllItems: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(order.Items)))

	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListByUserID: %w", err)
	}

	return orders, nil
}

// GetByID returns an order only to its owner. A foreign order surfaces as
// Forbidden, matching the per-item ownership rule for carts.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID uuid.UUID) (domain.Order, error) {
	order, found, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetByID: %w", err)
	}
	if !found {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if order.UserID != userID {
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}
