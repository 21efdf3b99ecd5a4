package handler

import (
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// ProductHandler exposes catalog endpoints. Reads are public; writes are
// restricted to admins by the router.
type ProductHandler struct {
	BaseHandler
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: BaseHandler{Logger: logger},
		catalog:     catalog,
	}
}

// CreateProductRequest is the body for POST /products.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Currency    string  `json:"currency" binding:"omitempty,len=3"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Stock       int32   `json:"stock" binding:"gte=0"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateProductRequest is the body for PUT /products/:id. Absent fields
// keep their current values.
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Category    *string  `json:"category" binding:"omitempty,min=1,max=100"`
	Stock       *int32   `json:"stock" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
}

// ListQuery holds the query parameters for GET /products.
type ListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

func (h *ProductHandler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.catalog.List(c.Request.Context(), port.ProductFilter{
		Category: query.Category,
		Search:   query.Search,
		Limit:    query.PageSize,
		Offset:   (query.Page - 1) * query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}

	h.SuccessWithMeta(c, responses, total, query.Page, query.PageSize)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := parseCurrency(req.Currency)
	if err != nil {
		h.BadRequest(c, "Invalid currency")
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.NewMoney(decimal.NewFromFloat(req.Price), unit),
		Category:    req.Category,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	current, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Price != nil {
		current.Price = domain.NewMoney(decimal.NewFromFloat(*req.Price), current.Price.Currency)
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.Stock != nil {
		current.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		current.ImageURL = *req.ImageURL
	}

	product, err := h.catalog.Update(c.Request.Context(), current)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Product deleted"})
}

// ProductResponse is the catalog entry as serialized to clients.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Stock       int32   `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Rounded().InexactFloat64(),
		Currency:    p.Price.Currency.String(),
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

func parseCurrency(code string) (currency.Unit, error) {
	if code == "" {
		return currency.USD, nil
	}
	return currency.ParseISO(code)
}
