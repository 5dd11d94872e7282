package dto

import (
	"time"

	"github.com/allisson/articles/internal/article/domain"
)

// AuthorResponse is the author summary embedded in article responses.
type AuthorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Published bool            `json:"published"`
	AuthorID  string          `json:"author_id"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListArticlesResponse wraps a page of articles.
type ListArticlesResponse struct {
	Data []ArticleResponse `json:"data"`
}

// MapArticleToResponse converts a domain article to its API representation.
func MapArticleToResponse(article *domain.Article) ArticleResponse {
	response := ArticleResponse{
		ID:        article.ID.String(),
		Title:     article.Title,
		Content:   article.Content,
		Published: article.Published,
		AuthorID:  article.AuthorID.String(),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
	if article.Author != nil {
		response.Author = &AuthorResponse{
			ID:    article.Author.ID.String(),
			Name:  article.Author.Name,
			Email: article.Author.Email,
		}
	}
	return response
}

// MapArticlesToListResponse converts a page of domain articles to the list response.
func MapArticlesToListResponse(articles []*domain.Article) ListArticlesResponse {
	data := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		data = append(data, MapArticleToResponse(article))
	}
	return ListArticlesResponse{Data: data}
}
