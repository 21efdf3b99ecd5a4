package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Fulfillment transitions are out of scope; orders are
// created pending and stay there.
const (
	OrderStatusPending = "pending"
)

// Order is an immutable snapshot of a cart taken at checkout time.
// Product names and prices are copied so later catalog edits do not
// rewrite order history.
type Order struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Status string
	Total  Money
	Items  []OrderItem

	CreatedAt time.Time
}

type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Price       Money
	Quantity    int32
}
