package domain

import (
	"github.com/allisson/articles/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrUnauthenticated indicates a capability is required but no identity is present.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrInvalidToken indicates the session token is malformed, expired, badly signed or
	// missing required claims.
	ErrInvalidToken = errors.ErrInvalidToken

	// ErrInvalidCredentials indicates the email/password pair did not match a user.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInsufficientRole indicates the identity's role does not grant the required capability.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")

	// ErrNotOwner indicates the identity does not own the resource it tries to mutate.
	ErrNotOwner = errors.Wrap(errors.ErrForbidden, "not the resource owner")

	// ErrInvalidRole indicates an unknown role name.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)
