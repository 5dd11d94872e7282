// Package domain defines authentication and authorization domain models.
// Implements role-based access control over a static capability table, combined with
// resource ownership checks for mutating operations.
package domain

import (
	"strings"

	"github.com/allisson/articles/internal/errors"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	// AdminRole holds every capability, including user management.
	AdminRole Role = "admin"

	// EditorRole can create articles and read, update or delete the articles it owns.
	EditorRole Role = "editor"

	// ReaderRole can only read articles.
	ReaderRole Role = "reader"
)

// Roles returns every valid role.
func Roles() []Role {
	return []Role{AdminRole, EditorRole, ReaderRole}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case AdminRole, EditorRole, ReaderRole:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string into a Role, ignoring case and surrounding whitespace.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", errors.Wrapf(ErrInvalidRole, "unknown role %q", s)
	}
	return role, nil
}

// Capability is a named permission required to perform an operation.
type Capability string

const (
	// ReadArticlesCapability allows listing and reading articles.
	ReadArticlesCapability Capability = "read:articles"

	// CreateArticlesCapability allows creating articles.
	CreateArticlesCapability Capability = "create:articles"

	// UpdateArticlesCapability allows updating articles. Ownership is checked separately.
	UpdateArticlesCapability Capability = "update:articles"

	// DeleteArticlesCapability allows deleting articles. Ownership is checked separately.
	DeleteArticlesCapability Capability = "delete:articles"

	// AdminCapability allows user management.
	AdminCapability Capability = "admin"
)

func (c Capability) String() string {
	return string(c)
}
