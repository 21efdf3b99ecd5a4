package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q querier
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{q: tx}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order has no items")
	}

	err := r.q.QueryRow(ctx, `
		INSERT INTO orders (user_id, status, total_amount, total_currency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		order.UserID, order.Status, order.Total.Amount, order.Total.Currency.String(),
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := r.q.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, price_amount, price_currency, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName,
			item.Price.Amount, item.Price.Currency.String(), item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, bool, error) {
	var (
		order        domain.Order
		totalAmount  decimal.Decimal
		currencyCode string
	)
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, status, total_amount, total_currency, created_at FROM orders WHERE id = $1`,
		id,
	).Scan(&order.ID, &order.UserID, &order.Status, &totalAmount, &currencyCode, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}
	order.Total = domain.NewMoney(totalAmount, parsedCurrency)

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("listItems: %w", err)
	}
	order.Items = items

	return order, true, nil
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, status, total_amount, total_currency, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var (
			order        domain.Order
			totalAmount  decimal.Decimal
			currencyCode string
		)
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &totalAmount, &currencyCode, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		order.Total = domain.NewMoney(totalAmount, parsedCurrency)

		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("listItems: %w", err)
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, product_name, price_amount, price_currency, quantity
		 FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item         domain.OrderItem
			priceAmount  decimal.Decimal
			currencyCode string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &priceAmount, &currencyCode, &item.Quantity); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		item.Price = domain.NewMoney(priceAmount, parsedCurrency)

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}
