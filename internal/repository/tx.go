package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository code runs either directly on the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	// Ensure proper rollback handling
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

// txScope implements service.TxScope on a pgx connection pool. All repositories
// handed to the callback share a single transaction; an error from the callback
// rolls everything back.
type txScope struct {
	pool *pgxpool.Pool
}

func NewTxScope(pool *pgxpool.Pool) service.TxScope {
	return &txScope{pool: pool}
}

func (s *txScope) Execute(ctx context.Context, fn func(repos service.TxRepositories) error) error {
	_, err := withTx(ctx, s.pool, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(&txRepositories{tx: tx})
	})
	return err
}

type txRepositories struct {
	tx pgx.Tx
}

func (r *txRepositories) Carts() port.CartRepository       { return NewCartWithTx(r.tx) }
func (r *txRepositories) Products() port.ProductRepository { return NewProductWithTx(r.tx) }
func (r *txRepositories) Orders() port.OrderRepository     { return NewOrderWithTx(r.tx) }
