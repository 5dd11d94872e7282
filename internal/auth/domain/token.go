package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a signed, stateless access token and its expiry.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string //nolint:gosec // plaintext only in transit, never stored
}

// LoginOutput contains the issued session and a summary of the authenticated user.
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      uuid.UUID
	Name        string
	Email       string
	Role        Role
}
