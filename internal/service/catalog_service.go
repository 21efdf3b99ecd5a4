package service

import (
	"context"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
)

// CatalogService manages the product catalog. It is also the stock ledger:
// product rows own the authoritative available-quantity counters consumed
// by the cart engine.
type CatalogService struct {
	products port.ProductRepository
}

func NewCatalogService(products port.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, domain.NewValidationError("Product name is required")
	}
	if product.Price.IsNegative() {
		return domain.Product{}, domain.NewValidationError("Price must not be negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, domain.NewValidationError("Stock must not be negative")
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Create: %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	product, found, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetByID: %w", err)
	}
	if !found {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return product, nil
}

func (s *CatalogService) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int64, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("products.List: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Price.IsNegative() {
		return domain.Product{}, domain.NewValidationError("Price must not be negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, domain.NewValidationError("Stock must not be negative")
	}

	_, found, err := s.products.GetByID(ctx, product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetByID: %w", err)
	}
	if !found {
		return domain.Product{}, domain.ErrProductNotFound
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Update: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("products.Delete: %w", err)
	}
	if !deleted {
		return domain.ErrProductNotFound
	}

	return nil
}
