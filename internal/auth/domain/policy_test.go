package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllows_CapabilityTable(t *testing.T) {
	expected := map[Capability]map[Role]bool{
		AdminCapability: {
			AdminRole:  true,
			EditorRole: false,
			ReaderRole: false,
		},
		CreateArticlesCapability: {
			AdminRole:  true,
			EditorRole: true,
			ReaderRole: false,
		},
		UpdateArticlesCapability: {
			AdminRole:  true,
			EditorRole: true,
			ReaderRole: false,
		},
		DeleteArticlesCapability: {
			AdminRole:  true,
			EditorRole: true,
			ReaderRole: false,
		},
		ReadArticlesCapability: {
			AdminRole:  true,
			EditorRole: true,
			ReaderRole: true,
		},
	}

	for capability, roles := range expected {
		for _, role := range Roles() {
			t.Run(string(role)+"_"+string(capability), func(t *testing.T) {
				assert.Equal(t, roles[role], Allows(role, capability))

				err := RequireCapability(&Identity{Role: role}, capability)
				if roles[role] {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, ErrInsufficientRole)
				}
			})
		}
	}
}

func TestAllowedRoles(t *testing.T) {
	t.Run("Success_KnownCapability", func(t *testing.T) {
		assert.ElementsMatch(t, []Role{AdminRole, EditorRole}, AllowedRoles(CreateArticlesCapability))
	})

	t.Run("Success_UnknownCapabilityHasNoRoles", func(t *testing.T) {
		assert.Empty(t, AllowedRoles(Capability("publish:articles")))
		for _, role := range Roles() {
			assert.False(t, Allows(role, Capability("publish:articles")))
		}
	})

	t.Run("Success_ReturnsCopy", func(t *testing.T) {
		roles := AllowedRoles(AdminCapability)
		roles[0] = ReaderRole

		assert.True(t, Allows(AdminRole, AdminCapability))
		assert.False(t, Allows(ReaderRole, AdminCapability))
	})
}
