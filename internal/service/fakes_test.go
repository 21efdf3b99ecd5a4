package service_test

import (
	"context"
	"sync"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. It
// mirrors the store-level guarantees the services rely on: one cart per
// user, merged quantities checked against the ceiling, guarded stock
// decrements.
type fakeStore struct {
	mu sync.Mutex

	carts    map[uuid.UUID]domain.Cart // by userID
	items    map[uuid.UUID]domain.CartItem
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]domain.Order
	users    map[uuid.UUID]domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:    make(map[uuid.UUID]domain.Cart),
		items:    make(map[uuid.UUID]domain.CartItem),
		products: make(map[uuid.UUID]domain.Product),
		orders:   make(map[uuid.UUID]domain.Order),
		users:    make(map[uuid.UUID]domain.User),
	}
}

func (s *fakeStore) addProduct(product domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	s.products[product.ID] = product
	return product
}

type fakeCartRepo struct{ store *fakeStore }

func (r *fakeCartRepo) GetOrCreate(_ context.Context, userID uuid.UUID) (domain.Cart, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if cart, ok := s.carts[userID]; ok {
		return cart, nil
	}

	cart := domain.Cart{ID: uuid.New(), UserID: userID}
	s.carts[userID] = cart
	return cart, nil
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (domain.Cart, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	return cart, ok, nil
}

func (r *fakeCartRepo) FindItem(_ context.Context, cartID, productID uuid.UUID) (domain.CartItem, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.CartID == cartID && item.ProductID == productID {
			return item, true, nil
		}
	}
	return domain.CartItem{}, false, nil
}

func (r *fakeCartRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (domain.CartItem, uuid.UUID, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return domain.CartItem{}, uuid.Nil, false, nil
	}

	for userID, cart := range s.carts {
		if cart.ID == item.CartID {
			return item, userID, true, nil
		}
	}
	return domain.CartItem{}, uuid.Nil, false, nil
}

func (r *fakeCartRepo) AddItemQuantity(_ context.Context, cartID, productID uuid.UUID, quantity, maxStock int32) (domain.CartItem, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.CartID == cartID && item.ProductID == productID {
			merged := item.Quantity + quantity
			if merged > maxStock {
				return domain.CartItem{}, false, nil
			}
			item.Quantity = merged
			s.items[id] = item
			return item, true, nil
		}
	}

	if quantity > maxStock {
		return domain.CartItem{}, false, nil
	}
	item := domain.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	s.items[item.ID] = item
	return item, true, nil
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int32) (domain.CartItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.items[itemID]
	item.Quantity = quantity
	s.items[itemID] = item
	return item, nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return false, nil
	}
	delete(s.items, itemID)
	return true, nil
}

func (r *fakeCartRepo) DeleteAllItems(_ context.Context, cartID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.CartID == cartID {
			delete(s.items, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) ListItems(_ context.Context, cartID uuid.UUID) ([]domain.CartItem, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.CartItem
	for _, item := range s.items {
		if item.CartID != cartID {
			continue
		}
		if product, ok := s.products[item.ProductID]; ok {
			p := product
			item.Product = &p
		}
		items = append(items, item)
	}
	return items, nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	return r.store.addProduct(product), nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Product, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	return product, ok, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter port.ProductFilter) ([]domain.Product, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []domain.Product
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, product domain.Product) (domain.Product, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (r *fakeProductRepo) CurrentStock(_ context.Context, id uuid.UUID) (int32, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return 0, false, nil
	}
	return product.Stock, true, nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int32) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok || product.Stock < quantity {
		return false, nil
	}
	product.Stock -= quantity
	s.products[id] = product
	return true, nil
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = uuid.New()
	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = order
	return order, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Order, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	return order, ok, nil
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []domain.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	user.ID = uuid.New()
	s.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	return user, ok, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, email string) (domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for otherID, other := range s.users {
		if otherID != id && other.Email == email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	user := s.users[id]
	user.Name = name
	user.Email = email
	s.users[id] = user
	return user, nil
}

var (
	_ port.CartRepository    = (*fakeCartRepo)(nil)
	_ port.ProductRepository = (*fakeProductRepo)(nil)
	_ port.OrderRepository   = (*fakeOrderRepo)(nil)
	_ port.UserRepository    = (*fakeUserRepo)(nil)
)
