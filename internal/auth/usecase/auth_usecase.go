// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	authService "github.com/allisson/articles/internal/auth/service"
	userDomain "github.com/allisson/articles/internal/user/domain"
)

// authUseCase implements AuthUseCase on top of stored users and stateless session tokens.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	sessionService  authService.SessionService
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	sessionService authService.SessionService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		sessionService:  sessionService,
	}
}

// Login authenticates a user by email and password and issues a session token.
//
// Security Notes:
//   - The email is normalized before lookup, so login is case-insensitive
//   - Unknown email and wrong password both return ErrInvalidCredentials
//   - The token carries only the user id and role
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := a.userRepo.GetByEmail(ctx, userDomain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordService.Verify(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	session, err := a.sessionService.Issue(user.Identity())
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
	}, nil
}

// Authenticate parses the bearer token into an identity without touching storage.
func (a *authUseCase) Authenticate(_ context.Context, token string) (*authDomain.Identity, error) {
	return a.sessionService.Parse(token)
}
