// Package dto provides data transfer objects for the article HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/articles/internal/article/domain"
	customValidation "github.com/allisson/articles/internal/validation"
)

// CreateArticleRequest contains the parameters for writing an article.
type CreateArticleRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// Validate checks if the create article request is valid.
func (r *CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToCreateArticleInput converts a validated request to the use case input.
func (r *CreateArticleRequest) ToCreateArticleInput() *domain.CreateArticleInput {
	return &domain.CreateArticleInput{
		Title:     r.Title,
		Content:   r.Content,
		Published: r.Published,
	}
}

// UpdateArticleRequest contains the fields to change. Omitted fields are left untouched.
type UpdateArticleRequest struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate checks if the update article request is valid. Present fields must not be blank.
func (r *UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.NilOrNotEmpty,
			customValidation.NotBlank,
		),
	)
}

// ToUpdateArticleInput converts a validated request to the use case input.
func (r *UpdateArticleRequest) ToUpdateArticleInput() *domain.UpdateArticleInput {
	return &domain.UpdateArticleInput{
		Title:     r.Title,
		Content:   r.Content,
		Published: r.Published,
	}
}
