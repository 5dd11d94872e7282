// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/articles/internal/auth/domain"
	customValidation "github.com/allisson/articles/internal/validation"
)

// passwordRules is the minimal strength policy for user passwords.
var passwordRules = customValidation.PasswordStrength{MinLength: 6}

func roleRule() validation.Rule {
	roles := make([]any, 0, len(authDomain.Roles()))
	for _, role := range authDomain.Roles() {
		roles = append(roles, role.String())
	}
	return validation.In(roles...).Error("must be one of admin, editor, reader")
}

// CreateUserRequest contains the parameters for registering a user.
type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"` //nolint:gosec // plaintext only in transit
	Role     *string `json:"role,omitempty"`
}

// Validate checks if the create user request is valid, including the requested role.
func (r *CreateUserRequest) Validate() error {
	return r.ValidateFor(true)
}

// ValidateFor checks the request on behalf of a requester. The role is only checked when
// roleAssignable is true; any other registration is created as a reader whatever it asked for.
func (r *CreateUserRequest) ValidateFor(roleAssignable bool) error {
	roleRules := []validation.Rule{validation.NilOrNotEmpty}
	if roleAssignable {
		roleRules = append(roleRules, roleRule())
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 128),
			passwordRules,
		),
		validation.Field(&r.Role, roleRules...),
	)
}

// UpdateUserRequest contains the fields an admin may change. Omitted fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"` //nolint:gosec // plaintext only in transit
	Role     *string `json:"role,omitempty"`
}

// Validate checks if the update user request is valid.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.NilOrNotEmpty,
			customValidation.Email,
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.NilOrNotEmpty,
			validation.Length(6, 128),
			passwordRules,
		),
		validation.Field(&r.Role, validation.NilOrNotEmpty, roleRule()),
	)
}
