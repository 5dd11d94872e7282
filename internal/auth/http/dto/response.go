package dto

import (
	"time"

	authDomain "github.com/allisson/articles/internal/auth/domain"
)

// LoginUserResponse summarizes the authenticated user.
type LoginUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse contains the issued session token.
type LoginResponse struct {
	AccessToken string            `json:"access_token"` //nolint:gosec // returned to its owner
	ExpiresAt   time.Time         `json:"expires_at"`
	User        LoginUserResponse `json:"user"`
}

// MapLoginOutputToResponse converts a login output to an API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.AccessToken,
		ExpiresAt:   output.ExpiresAt,
		User: LoginUserResponse{
			ID:    output.UserID.String(),
			Name:  output.Name,
			Email: output.Email,
			Role:  output.Role.String(),
		},
	}
}
