package router_test

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/google/uuid"
)

// memStore backs the API tests with in-memory repositories sharing one
// state, the same shape the transactional repositories expose over Postgres.
type memStore struct {
	carts    map[uuid.UUID]domain.Cart
	items    map[uuid.UUID]domain.CartItem
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]domain.Order
	users    map[uuid.UUID]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		carts:    make(map[uuid.UUID]domain.Cart),
		items:    make(map[uuid.UUID]domain.CartItem),
		products: make(map[uuid.UUID]domain.Product),
		orders:   make(map[uuid.UUID]domain.Order),
		users:    make(map[uuid.UUID]domain.User),
	}
}

func (s *memStore) txScope() *service.NoOpTxScope {
	return &service.NoOpTxScope{
		CartRepo:    &memCartRepo{s},
		ProductRepo: &memProductRepo{s},
		OrderRepo:   &memOrderRepo{s},
	}
}

type memCartRepo struct{ s *memStore }

func (r *memCartRepo) GetOrCreate(_ context.Context, userID uuid.UUID) (domain.Cart, error) {
	if cart, ok := r.s.carts[userID]; ok {
		return cart, nil
	}
	cart := domain.Cart{ID: uuid.New(), UserID: userID}
	r.s.carts[userID] = cart
	return cart, nil
}

func (r *memCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (domain.Cart, bool, error) {
	cart, ok := r.s.carts[userID]
	return cart, ok, nil
}

func (r *memCartRepo) FindItem(_ context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	for _, item := range r.s.items {
		if item.CartID == cartID && item.ProductID == productID {
			return item, true, nil
		}
	}
	return domain.CartItem{}, false, nil
}

func (r *memCartRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (domain.CartItem, uuid.UUID, bool, error) {
	item, ok := r.s.items[itemID]
	if !ok {
		return domain.CartItem{}, uuid.Nil, false, nil
	}
	for userID, cart := range r.s.carts {
		if cart.ID == item.CartID {
			return item, userID, true, nil
		}
	}
	return domain.CartItem{}, uuid.Nil, false, nil
}

func (r *memCartRepo) AddItemQuantity(_ context.Context, cartID, productID uuid.UUID, quantity, maxStock int32) (domain.CartItem, bool, error) {
	for id, item := range r.s.items {
		if item.CartID == cartID && item.ProductID == productID {
			if item.Quantity+quantity > maxStock {
				return domain.CartItem{}, false, nil
			}
			item.Quantity += quantity
			r.s.items[id] = item
			return item, true, nil
		}
	}
	if quantity > maxStock {
		return domain.CartItem{}, false, nil
	}
	item := domain.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: quantity}
	r.s.items[item.ID] = item
	return item, true, nil
}

func (r *memCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	item := r.s.items[itemID]
	item.Quantity = quantity
	r.s.items[itemID] = item
	return item, nil
}

func (r *memCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	if _, ok := r.s.items[itemID]; !ok {
		return false, nil
	}
	delete(r.s.items, itemID)
	return true, nil
}

func (r *memCartRepo) DeleteAllItems(_ context.Context, cartID uuid.UUID) error {
	for id, item := range r.s.items {
		if item.CartID == cartID {
			delete(r.s.items, id)
		}
	}
	return nil
}

func (r *memCartRepo) ListItems(_ context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	var items []domain.CartItem
	for _, item := range r.s.items {
		if item.CartID != cartID {
			continue
		}
		if product, ok := r.s.products[item.ProductID]; ok {
			p := product
			item.Product = &p
		}
		items = append(items, item)
	}
	return items, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	product.ID = uuid.New()
	r.s.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Product, bool, error) {
	product, ok := r.s.products[id]
	return product, ok, nil
}

func (r *memProductRepo) List(_ context.Context, filter port.ProductFilter) ([]domain.Product, int64, error) {
	var products []domain.Product
	for _, p := range r.s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

func (r *memProductRepo) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	r.s.products[product.ID] = product
	return product, nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	delete(r.s.products, id)
	return true, nil
}

func (r *memProductRepo) CurrentStock(_ context.Context, id uuid.UUID) (int32, bool, error) {
	product, ok := r.s.products[id]
	if !ok {
		return 0, false, nil
	}
	return product.Stock, true, nil
}

func (r *memProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int32) (bool, error) {
	product, ok := r.s.products[id]
	if !ok || product.Stock < quantity {
		return false, nil
	}
	product.Stock -= quantity
	r.s.products[id] = product
	return true, nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	r.s.orders[order.ID] = order
	return order, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Order, bool, error) {
	order, ok := r.s.orders[id]
	return order, ok, nil
}

func (r *memOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range r.s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	user.ID = uuid.New()
	r.s.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, bool, error) {
	user, ok := r.s.users[id]
	return user, ok, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (domain.User, bool, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, email string) (domain.User, error) {
	user := r.s.users[id]
	user.Name = name
	user.Email = email
	r.s.users[id] = user
	return user, nil
}

// stubRecommender returns canned responses, or the unavailable error when
// down is set.
type stubRecommender struct {
	down bool
}

func (s *stubRecommender) ForUser(context.Context, string, int) ([]port.Recommendation, error) {
	if s.down {
		return nil, domain.ErrUnavailable
	}
	return []port.Recommendation{{ProductID: "p1", Score: 0.9}}, nil
}

func (s *stubRecommender) SimilarProducts(context.Context, string, int) ([]port.Recommendation, error) {
	if s.down {
		return nil, domain.ErrUnavailable
	}
	return []port.Recommendation{{ProductID: "p2", Score: 0.7}}, nil
}

func (s *stubRecommender) Train(context.Context) (port.TrainResult, error) {
	if s.down {
		return port.TrainResult{}, domain.ErrUnavailable
	}
	return port.TrainResult{Message: "trained", Accuracy: 91.0, TargetMet: true}, nil
}

func (s *stubRecommender) Accuracy(context.Context) (port.TrainResult, error) {
	if s.down {
		return port.TrainResult{}, domain.ErrUnavailable
	}
	return port.TrainResult{Accuracy: 91.0, TargetMet: true}, nil
}

var (
	_ port.CartRepository    = (*memCartRepo)(nil)
	_ port.ProductRepository = (*memProductRepo)(nil)
	_ port.OrderRepository   = (*memOrderRepo)(nil)
	_ port.UserRepository    = (*memUserRepo)(nil)
	_ port.Recommender       = (*stubRecommender)(nil)
)
