package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// AuthService defines registration and login use cases.
type AuthService interface {
	// Register creates an account with a hashed credential and returns it.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies the credential and returns a signed session token plus
	// the matching account.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
