package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	userDomain "github.com/allisson/articles/internal/user/domain"
	userMocks "github.com/allisson/articles/internal/user/usecase/mocks"
)

func seededFrom(input userDomain.UpsertUserInput) *userDomain.User {
	now := time.Now().UTC()
	return &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func matchEmail(email string) any {
	return mock.MatchedBy(func(input *userDomain.UpsertUserInput) bool {
		return input.Email == email
	})
}

func TestRunSeedUsers(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("text", func(t *testing.T) {
		users := userMocks.NewMockUseCase(t)
		for i, seed := range DefaultSeedUsers {
			users.On("Upsert", ctx, matchEmail(seed.Email)).Return(seededFrom(seed), i != 0, nil).Once()
		}

		var out bytes.Buffer
		err := RunSeedUsers(ctx, users, logger, &out, DefaultSeedUsers, "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Seed completed successfully!")
		assert.Contains(t, out.String(), "admin@admin.com")
		assert.Contains(t, out.String(), "existing")
		assert.Contains(t, out.String(), "editor@editor.com / editor123")
	})

	t.Run("json", func(t *testing.T) {
		users := userMocks.NewMockUseCase(t)
		for _, seed := range DefaultSeedUsers {
			users.On("Upsert", ctx, matchEmail(seed.Email)).Return(seededFrom(seed), true, nil).Once()
		}

		var out bytes.Buffer
		err := RunSeedUsers(ctx, users, logger, &out, DefaultSeedUsers, "json")
		require.NoError(t, err)

		var result struct {
			Users []struct {
				Email   string `json:"email"`
				Role    string `json:"role"`
				Created bool   `json:"created"`
			} `json:"users"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Len(t, result.Users, 3)
		assert.Equal(t, "admin", result.Users[0].Role)
		assert.Equal(t, "editor", result.Users[1].Role)
		assert.Equal(t, "reader", result.Users[2].Role)
		assert.NotContains(t, out.String(), "admin123")
	})

	t.Run("stops on error", func(t *testing.T) {
		users := userMocks.NewMockUseCase(t)
		users.On("Upsert", ctx, matchEmail("admin@admin.com")).Return(nil, false, errors.New("db down")).Once()

		var out bytes.Buffer
		err := RunSeedUsers(ctx, users, logger, &out, DefaultSeedUsers, "text")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin@admin.com")
		assert.Empty(t, out.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		users := userMocks.NewMockUseCase(t)

		err := RunSeedUsers(ctx, users, logger, io.Discard, DefaultSeedUsers, "yaml")

		require.Error(t, err)
	})
}

func TestDefaultSeedUsers(t *testing.T) {
	roles := make(map[authDomain.Role]bool)
	for _, seed := range DefaultSeedUsers {
		roles[seed.Role] = true
	}
	assert.Len(t, roles, len(authDomain.Roles()))
}
