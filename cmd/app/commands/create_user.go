package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	userDomain "github.com/allisson/articles/internal/user/domain"
	userDTO "github.com/allisson/articles/internal/user/http/dto"
	userUseCase "github.com/allisson/articles/internal/user/usecase"
	customValidation "github.com/allisson/articles/internal/validation"
)

// operator is the identity the CLI acts as. It may assign any role.
var operator = &authDomain.Identity{Role: authDomain.AdminRole}

// RunCreateUser creates a user with an explicit role. When password is empty it is read
// from io.Reader, so it does not have to appear in the shell history.
func RunCreateUser(
	ctx context.Context,
	users userUseCase.UseCase,
	logger *slog.Logger,
	name string,
	email string,
	password string,
	roleName string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	role, err := authDomain.ParseRole(roleName)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	roleValue := role.String()
	req := userDTO.CreateUserRequest{Name: name, Email: email, Password: password, Role: &roleValue}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	logger.Info("creating user", slog.String("email", email), slog.String("role", role.String()))

	user, err := users.Create(ctx, operator, &userDomain.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     &role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		return writeJSON(io.Writer, map[string]string{
			"id":    user.ID.String(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role.String(),
		})
	}

	_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
	_, _ = fmt.Fprintf(io.Writer, "ID: %s\n", user.ID)
	_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(io.Writer, "Role: %s\n", user.Role)

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	reader := bufio.NewReader(io.Reader)
	password, err := reader.ReadString('\n')
	if err != nil && password == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
