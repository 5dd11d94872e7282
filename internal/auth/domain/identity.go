package domain

import (
	"github.com/google/uuid"

	"github.com/allisson/articles/internal/errors"
)

// Identity is the authenticated subject of an authorization decision.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == AdminRole
}

// RequireCapability checks that identity holds at least one of the given capabilities.
//
// With no capabilities the check always passes, even for a nil identity. Otherwise a nil
// identity yields ErrUnauthenticated and a role outside every capability's allowed set
// yields ErrInsufficientRole.
func RequireCapability(identity *Identity, capabilities ...Capability) error {
	if len(capabilities) == 0 {
		return nil
	}
	if identity == nil {
		return ErrUnauthenticated
	}

	for _, capability := range capabilities {
		if Allows(identity.Role, capability) {
			return nil
		}
	}

	return errors.Wrapf(ErrInsufficientRole, "role %q lacks %v", identity.Role, capabilities)
}

// RequireOwnership checks that identity owns the resource. Admins get no bypass.
func RequireOwnership(identity *Identity, ownerID uuid.UUID) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if identity.UserID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// RegistrationRole returns the effective role for a new user. Only an admin requester may
// choose the role; everyone else, anonymous callers included, gets ReaderRole.
func RegistrationRole(requester *Identity, requested *Role) Role {
	if !requester.IsAdmin() {
		return ReaderRole
	}
	if requested == nil || *requested == "" {
		return ReaderRole
	}
	return *requested
}
