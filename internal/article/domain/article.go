// Package domain defines the core article domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/articles/internal/errors"
)

// Author is the summary of the user who wrote an article.
type Author struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Article represents a piece of content owned by its author.
type Article struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	Content   string
	Published bool
	Author    *Author
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateArticleInput contains the data for writing an article. The author is always the
// acting identity.
type CreateArticleInput struct {
	Title     string
	Content   string
	Published bool
}

// UpdateArticleInput contains the fields an owner may change. Nil fields are left untouched.
type UpdateArticleInput struct {
	Title     *string
	Content   *string
	Published *bool
}

// Domain-specific errors for article operations.
var (
	// ErrArticleNotFound indicates the requested article does not exist.
	ErrArticleNotFound = errors.Wrap(errors.ErrNotFound, "article not found")
)
