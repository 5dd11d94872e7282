// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	customValidation "github.com/allisson/articles/internal/validation"
)

// LoginRequest contains the credentials for issuing a session token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // plaintext only in transit
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}

// ToLoginInput converts a validated LoginRequest to the use case input.
func (r *LoginRequest) ToLoginInput() *authDomain.LoginInput {
	return &authDomain.LoginInput{
		Email:    r.Email,
		Password: r.Password,
	}
}
