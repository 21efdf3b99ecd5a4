package handler

import (
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartHandler exposes the cart endpoints. Every route requires an
// authenticated identity; ownership of individual items is enforced by the
// cart service, not by trusting client-supplied linkage.
type CartHandler struct {
	BaseHandler
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: BaseHandler{Logger: logger},
		carts:       carts,
	}
}

// AddToCartRequest is the body for POST /cart/items.
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int32  `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest is the body for PUT /cart/items/:itemId.
type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the user's cart with items, total and item count,
// creating an empty cart on first access.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartResponse(view))
}

// AddToCart adds a product to the cart, merging with an existing line for
// the same product.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid productId")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item, err := h.carts.AddToCart(c.Request.Context(), userID, productID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCartItemResponse(item))
}

// UpdateCartItem replaces an item's quantity.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	itemID, ok := h.parseID(c, "itemId")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.carts.UpdateCartItem(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCartItemResponse(item))
}

// RemoveFromCart deletes a single item from the cart.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	itemID, ok := h.parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.carts.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Item removed from cart"})
}

// ClearCart removes every item from the user's cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.carts.ClearCart(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Cart cleared"})
}

// CartResponse mirrors the cart view consumed by the storefront.
type CartResponse struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	Currency  string             `json:"currency"`
	ItemCount int                `json:"itemCount"`
}

type CartItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  int32            `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

func toCartResponse(view domain.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, toCartItemResponse(item))
	}

	return CartResponse{
		ID:        view.ID.String(),
		Items:     items,
		Total:     view.Total.Rounded().InexactFloat64(),
		Currency:  view.Total.Currency.String(),
		ItemCount: view.ItemCount,
	}
}

func toCartItemResponse(item domain.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		product := toProductResponse(*item.Product)
		resp.Product = &product
	}

	return resp
}
