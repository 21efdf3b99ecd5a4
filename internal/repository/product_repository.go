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

const productColumns = `id, name, description, price_amount, price_currency, category, stock, image_url, created_at, updated_at`

type productRepository struct {
	q querier
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{q: tx}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("stock is negative")
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, price_amount, price_currency, category, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		product.Name, product.Description, product.Price.Amount, product.Price.Currency.String(),
		product.Category, product.Stock, product.ImageURL,
	)

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, bool, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("select product: %w", err)
	}

	return product, true, nil
}

func (r *productRepository) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int64, error) {
	where := ` WHERE ($1 = '' OR category = $1) AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	var total int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, filter.Category, filter.Search).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products`+where+` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		filter.Category, filter.Search, limit, filter.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows.Err: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("stock is negative")
	}

	row := r.q.QueryRow(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_amount = $4, price_currency = $5,
		    category = $6, stock = $7, image_url = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		product.ID, product.Name, product.Description, product.Price.Amount,
		product.Price.Currency.String(), product.Category, product.Stock, product.ImageURL,
	)

	updated, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return updated, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) CurrentStock(ctx context.Context, id uuid.UUID) (int32, bool, error) {
	var stock int32
	err := r.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select stock: %w", err)
	}

	return stock, true, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int32) (bool, error) {
	if quantity < 1 {
		return false, fmt.Errorf("quantity must be positive")
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`,
		id, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// rowScanner lets scanProduct work with both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product      domain.Product
		priceAmount  decimal.Decimal
		currencyCode string
	)

	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &priceAmount, &currencyCode,
		&product.Category, &product.Stock, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	product.Price = domain.NewMoney(priceAmount, parsedCurrency)

	return product, nil
}
