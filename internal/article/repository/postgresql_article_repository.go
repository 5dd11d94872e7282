// Package repository provides data persistence implementations for article entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/articles/internal/article/domain"
	"github.com/allisson/articles/internal/database"
	apperrors "github.com/allisson/articles/internal/errors"
)

// articleSelect reads articles joined with their author summary.
const articleSelect = `SELECT a.id, a.author_id, a.title, a.content, a.published, a.created_at, a.updated_at,
			  u.name, u.email
			  FROM articles a
			  JOIN users u ON u.id = a.author_id`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgreSQLArticleRepository handles article persistence for PostgreSQL
type PostgreSQLArticleRepository struct {
	db *sql.DB
}

// NewPostgreSQLArticleRepository creates a new PostgreSQLArticleRepository
func NewPostgreSQLArticleRepository(db *sql.DB) *PostgreSQLArticleRepository {
	return &PostgreSQLArticleRepository{
		db: db,
	}
}

// Create inserts a new article
func (r *PostgreSQLArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO articles (id, author_id, title, content, published, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(ctx, query, article.ID, article.AuthorID, article.Title,
		article.Content, article.Published, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create article")
	}
	return nil
}

// Update overwrites the mutable fields of an article
func (r *PostgreSQLArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE articles SET title = $1, content = $2, published = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(ctx, query, article.Title, article.Content, article.Published,
		article.UpdatedAt, article.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}

	return checkRowsAffected(result, "update article")
}

// Delete removes an article
func (r *PostgreSQLArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article")
	}

	return checkRowsAffected(result, "delete article")
}

// Get retrieves an article with its author summary
func (r *PostgreSQLArticleRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	query := articleSelect + ` WHERE a.id = $1`

	article, err := scanPostgreSQLArticle(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article by id")
	}

	return article, nil
}

// List returns articles newest first
func (r *PostgreSQLArticleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	query := articleSelect + `
			  ORDER BY a.created_at DESC, a.id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer rows.Close() //nolint:errcheck

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		article, err := scanPostgreSQLArticle(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article")
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate articles")
	}

	return articles, nil
}

func scanPostgreSQLArticle(row rowScanner) (*domain.Article, error) {
	var article domain.Article
	var author domain.Author
	err := row.Scan(&article.ID, &article.AuthorID, &article.Title, &article.Content, &article.Published,
		&article.CreatedAt, &article.UpdatedAt, &author.Name, &author.Email)
	if err != nil {
		return nil, err
	}
	author.ID = article.AuthorID
	article.Author = &author
	return &article, nil
}

func checkRowsAffected(result sql.Result, operation string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "failed to %s", operation)
	}
	if rows == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}
