package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Cart is the per-user container of line items. A user has at most one cart,
// created lazily on first access.
type Cart struct {
	ID     uuid.UUID
	UserID uuid.UUID

	CreatedAt time.Time
}

// CartItem is a single (product, quantity) line within a cart.
// The (CartID, ProductID) pair is unique: repeated adds merge quantities
// into the existing row instead of creating duplicates.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int32

	// Product is populated when items are listed joined with the catalog,
	// for price display and total computation.
	Product *Product

	CreatedAt time.Time
}

// CartView is the cart as returned to clients: items joined with products
// plus totals recomputed fresh on every read.
type CartView struct {
	ID        uuid.UUID
	Items     []CartItem
	Total     Money
	ItemCount int
}

// NewCartView computes the derived total and item count for a cart.
// Total is Σ(quantity × price) rounded to two decimal places;
// item count is the number of distinct lines, not the sum of quantities.
func NewCartView(cart Cart, items []CartItem) CartView {
	total := decimal.Zero
	unit := currency.USD

	for i, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Amount.Mul(decimal.NewFromInt32(item.Quantity)))
		if i == 0 {
			unit = item.Product.Price.Currency
		}
	}

	return CartView{
		ID:        cart.ID,
		Items:     items,
		Total:     NewMoney(total.Round(2), unit),
		ItemCount: len(items),
	}
}
