// Package domain defines the core user domain entities and types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	"github.com/allisson/articles/internal/errors"
)

// User represents a user in the system
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string //nolint:gosec // password hash, never the plaintext
	Role      authDomain.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the authorization subject for the user.
func (u *User) Identity() *authDomain.Identity {
	return &authDomain.Identity{UserID: u.ID, Role: u.Role}
}

// CreateUserInput contains the data for registering a user. Role is only honoured
// when the requester is an admin.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string //nolint:gosec // plaintext only in transit
	Role     *authDomain.Role
}

// UpdateUserInput contains the fields an admin may change. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string //nolint:gosec // plaintext only in transit
	Role     *authDomain.Role
}

// UpsertUserInput describes a seeded account.
type UpsertUserInput struct {
	Name     string
	Email    string
	Password string //nolint:gosec // plaintext only in transit
	Role     authDomain.Role
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
