package dto

import (
	authDomain "github.com/allisson/articles/internal/auth/domain"
	"github.com/allisson/articles/internal/user/domain"
)

func toRole(role *string) *authDomain.Role {
	if role == nil {
		return nil
	}
	r := authDomain.Role(*role)
	return &r
}

// ToCreateUserInput converts a validated CreateUserRequest to the use case input.
func ToCreateUserInput(req *CreateUserRequest) *domain.CreateUserInput {
	return &domain.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     toRole(req.Role),
	}
}

// ToUpdateUserInput converts a validated UpdateUserRequest to the use case input.
func ToUpdateUserInput(req *UpdateUserRequest) *domain.UpdateUserInput {
	return &domain.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     toRole(req.Role),
	}
}
