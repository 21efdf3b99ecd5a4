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

type cartRepository struct {
	q querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{q: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: tx}
}

func (r *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	if userID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("userID is empty")
	}

	// The no-op DO UPDATE makes RETURNING yield the row in both the insert
	// and the conflict case, so concurrent first calls converge on one cart.
	var cart domain.Cart
	err := r.q.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at`,
		userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("insert cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (domain.Cart, bool, error) {
	if userID == uuid.Nil {
		return domain.Cart{}, false, fmt.Errorf("userID is empty")
	}

	var cart domain.Cart
	err := r.q.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("select cart: %w", err)
	}

	return cart, true, nil
}

func (r *cartRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	var item domain.CartItem
	err := r.q.QueryRow(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("select cart item: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (domain.CartItem, uuid.UUID, bool, error) {
	var (
		item    domain.CartItem
		ownerID uuid.UUID
	)
	err := r.q.QueryRow(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, c.user_id
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE ci.id = $1`,
		itemID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, uuid.Nil, false, nil
	}
	if err != nil {
		return domain.CartItem{}, uuid.Nil, false, fmt.Errorf("select cart item: %w", err)
	}

	return item, ownerID, true, nil
}

func (r *cartRepository) AddItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity, maxStock int32) (domain.CartItem, bool, error) {
	if quantity < 1 {
		return domain.CartItem{}, false, fmt.Errorf("quantity must be positive")
	}

	// Merge is a single guarded upsert: the insert path checks the requested
	// quantity against maxStock and the conflict path checks the merged one.
	// Two concurrent adds serialize on the row; the loser of the race
	// re-evaluates the ceiling against the winner's committed quantity.
	var item domain.CartItem
	err := r.q.QueryRow(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		SELECT $1, $2, $3 WHERE $3 <= $4
		ON CONFLICT (cart_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    updated_at = now()
		WHERE cart_items.quantity + EXCLUDED.quantity <= $4
		RETURNING id, cart_id, product_id, quantity, created_at`,
		cartID, productID, quantity, maxStock,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Requested or merged quantity exceeds the ceiling.
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("upsert cart item: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("quantity must be positive")
	}

	var item domain.CartItem
	err := r.q.QueryRow(ctx, `
		UPDATE cart_items
		SET quantity = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, cart_id, product_id, quantity, created_at`,
		itemID, quantity,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("update cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) DeleteAllItems(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	return nil
}

func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at,
		       p.name, p.description, p.price_amount, p.price_currency,
		       p.category, p.stock, p.image_url
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at`,
		cartID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanJoinedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanJoinedItem: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

func scanJoinedItem(rows pgx.Rows) (domain.CartItem, error) {
	var (
		item         domain.CartItem
		product      domain.Product
		priceAmount  decimal.Decimal
		currencyCode string
	)

	err := rows.Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt,
		&product.Name, &product.Description, &priceAmount, &currencyCode,
		&product.Category, &product.Stock, &product.ImageURL,
	)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("rows.Scan: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	product.ID = item.ProductID
	product.Price = domain.NewMoney(priceAmount, parsedCurrency)
	item.Product = &product

	return item, nil
}
