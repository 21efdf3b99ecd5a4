package service

import (
	"context"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
)

// TxScope provides transactional access to the stores. Repository operations
// performed inside Execute share one database transaction and commit or roll
// back atomically.
type TxScope interface {
	// Execute runs fn within a transaction. An error from fn rolls the
	// transaction back; success commits it.
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}

// TxRepositories exposes the repositories scoped to the current transaction.
type TxRepositories interface {
	Carts() port.CartRepository
	Products() port.ProductRepository
	Orders() port.OrderRepository
}

// NoOpTxScope runs the callback without a real transaction. Used in tests
// where the fake repositories are not transactional anyway.
type NoOpTxScope struct {
	CartRepo    port.CartRepository
	ProductRepo port.ProductRepository
	OrderRepo   port.OrderRepository
}

func (s *NoOpTxScope) Execute(_ context.Context, fn func(repos TxRepositories) error) error {
	return fn(s)
}

func (s *NoOpTxScope) Carts() port.CartRepository       { return s.CartRepo }
func (s *NoOpTxScope) Products() port.ProductRepository { return s.ProductRepo }
func (s *NoOpTxScope) Orders() port.OrderRepository     { return s.OrderRepo }

var (
	_ TxScope        = (*NoOpTxScope)(nil)
	_ TxRepositories = (*NoOpTxScope)(nil)
)
