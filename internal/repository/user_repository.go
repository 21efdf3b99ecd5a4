package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, name, role, created_at, updated_at`

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type userRepository struct {
	q querier
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{q: pool}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, user.Name, user.Role,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, bool, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select user: %w", err)
	}

	return user, true, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	if email == "" {
		return domain.User{}, false, fmt.Errorf("email is empty")
	}

	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select user: %w", err)
	}

	return user, true, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (domain.User, error) {
	row := r.q.QueryRow(ctx, `
		UPDATE users
		SET name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, name, email,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
