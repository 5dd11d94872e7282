package domain

import (
	"slices"
)

// capabilityRoles is the static capability table. It is never mutated after init,
// so concurrent reads need no locking.
var capabilityRoles = map[Capability][]Role{
	AdminCapability:          {AdminRole},
	CreateArticlesCapability: {AdminRole, EditorRole},
	UpdateArticlesCapability: {AdminRole, EditorRole},
	DeleteArticlesCapability: {AdminRole, EditorRole},
	ReadArticlesCapability:   {AdminRole, EditorRole, ReaderRole},
}

// AllowedRoles returns the roles granted the capability. Unknown capabilities grant no role.
func AllowedRoles(capability Capability) []Role {
	return slices.Clone(capabilityRoles[capability])
}

// Allows reports whether role is granted the capability.
func Allows(role Role, capability Capability) bool {
	return slices.Contains(capabilityRoles[capability], role)
}
