package handler

import (
	"time"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	BaseHandler
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler: BaseHandler{Logger: logger},
		orders:      orders,
	}
}

// Checkout converts the user's cart into an order, decrementing stock and
// clearing the cart in the same transaction.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toOrderResponse(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}

	h.Success(c, responses)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	orderID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// OrderResponse is an order as serialized to clients. Names and prices
// come from the checkout-time snapshot, not the live catalog.
type OrderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Total     float64             `json:"total"`
	Currency  string              `json:"currency"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
}

type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Price:       item.Price.Rounded().InexactFloat64(),
			Quantity:    item.Quantity,
		})
	}

	return OrderResponse{
		ID:        order.ID.String(),
		Status:    order.Status,
		Total:     order.Total.Rounded().InexactFloat64(),
		Currency:  order.Total.Currency.String(),
		Items:     items,
		CreatedAt: order.CreatedAt,
	}
}
