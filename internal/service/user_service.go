package service

import (
	"context"
	"fmt"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential checks and profile updates.
// It never exposes password hashes past its boundary.
type UserService struct {
	users port.UserRepository
}

func NewUserService(users port.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	if len(password) < 6 {
		return domain.User{}, domain.NewValidationError("Password must be at least 6 characters")
	}
	if len(name) < 2 {
		return domain.User{}, domain.NewValidationError("Name must be at least 2 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("users.Create: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the matching user.
// It does not reveal whether the email or the password was wrong.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, found, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetByEmail: %w", err)
	}
	if !found {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, found, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetByID: %w", err)
	}
	if !found {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (domain.User, error) {
	current, found, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetByID: %w", err)
	}
	if !found {
		return domain.User{}, domain.ErrUserNotFound
	}

	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}

	user, err := s.users.UpdateProfile(ctx, id, name, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.UpdateProfile: %w", err)
	}

	return user, nil
}
