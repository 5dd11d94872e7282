// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	userDomain "github.com/allisson/articles/internal/user/domain"
)

// UserRepository defines the user lookups needed to authenticate credentials.
type UserRepository interface {
	// GetByEmail retrieves a user by normalized email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// AuthUseCase defines login and bearer token authentication.
type AuthUseCase interface {
	// Login verifies email and password and issues a session token.
	//
	// Returns ErrInvalidCredentials for both unknown emails and wrong passwords so callers
	// cannot enumerate accounts.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate validates a bearer token and returns the identity it carries.
	// Every failure is reported as ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*authDomain.Identity, error)
}
