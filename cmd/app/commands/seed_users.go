package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	userDomain "github.com/allisson/articles/internal/user/domain"
	userUseCase "github.com/allisson/articles/internal/user/usecase"
)

// DefaultSeedUsers are the accounts created by the seed-users command, one per role.
var DefaultSeedUsers = []userDomain.UpsertUserInput{
	{Name: "Admin User", Email: "admin@admin.com", Password: "admin123", Role: authDomain.AdminRole},
	{Name: "Editor User", Email: "editor@editor.com", Password: "editor123", Role: authDomain.EditorRole},
	{Name: "Reader User", Email: "reader@reader.com", Password: "reader123", Role: authDomain.ReaderRole},
}

type seededUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Created bool   `json:"created"`
}

// RunSeedUsers upserts the given accounts. Existing accounts keep their name and password;
// only their role is reset. Running it twice leaves the database unchanged.
func RunSeedUsers(
	ctx context.Context,
	users userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	seeds []userDomain.UpsertUserInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("seeding users", slog.Int("count", len(seeds)))

	results := make([]seededUser, 0, len(seeds))
	for i := range seeds {
		seed := seeds[i]

		user, created, err := users.Upsert(ctx, &seed)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seed.Email, err)
		}

		logger.Info("user seeded",
			slog.String("user_id", user.ID.String()),
			slog.String("email", user.Email),
			slog.String("role", user.Role.String()),
			slog.Bool("created", created),
		)

		results = append(results, seededUser{
			ID:      user.ID.String(),
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role.String(),
			Created: created,
		})
	}

	if format == "json" {
		return writeJSON(writer, map[string]any{"users": results})
	}

	_, _ = fmt.Fprintln(writer, "Seed completed successfully!")
	_, _ = fmt.Fprintln(writer)
	for _, result := range results {
		status := "existing"
		if result.Created {
			status = "created"
		}
		_, _ = fmt.Fprintf(writer, "%-7s %s (%s) %s\n", result.Role, result.Email, result.ID, status)
	}
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintln(writer, "Default credentials for newly created accounts:")
	for _, seed := range seeds {
		_, _ = fmt.Fprintf(writer, "  %s / %s\n", seed.Email, seed.Password)
	}

	return nil
}
