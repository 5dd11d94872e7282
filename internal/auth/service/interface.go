// Package service provides technical services for authentication operations.
//
// This package implements password hashing for stored credentials and the signing and
// parsing of stateless session tokens.
package service

import (
	"github.com/allisson/articles/internal/auth/domain"
)

// PasswordService defines operations for hashing and verifying user passwords.
type PasswordService interface {
	// Hash hashes a plain text password for storage.
	Hash(plainPassword string) (string, error)

	// Verify reports whether the plain text password matches the stored hash.
	// Malformed hashes never match.
	Verify(plainPassword, hashedPassword string) bool
}

// SessionService defines operations for issuing and parsing session tokens.
type SessionService interface {
	// Issue signs a token carrying the identity's subject and role, expiring after the
	// configured TTL.
	Issue(identity *domain.Identity) (*domain.Session, error)

	// Parse validates the token signature and expiry and recovers the identity.
	// Every failure is reported as domain.ErrInvalidToken.
	Parse(token string) (*domain.Identity, error)
}
