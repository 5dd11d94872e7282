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

// MySQLArticleRepository handles article persistence for MySQL
type MySQLArticleRepository struct {
	db *sql.DB
}

// NewMySQLArticleRepository creates a new MySQLArticleRepository
func NewMySQLArticleRepository(db *sql.DB) *MySQLArticleRepository {
	return &MySQLArticleRepository{
		db: db,
	}
}

// Create inserts a new article
func (r *MySQLArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO articles (id, author_id, title, content, published, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	authorIDBytes, err := article.AuthorID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal author UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, authorIDBytes, article.Title, article.Content,
		article.Published, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create article")
	}
	return nil
}

// Update overwrites the mutable fields of an article. MySQL reports changed rather than
// matched rows, so callers load the article first to detect a missing id.
func (r *MySQLArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE articles SET title = ?, content = ?, published = ?, updated_at = ?
			  WHERE id = ?`

	idBytes, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, article.Title, article.Content, article.Published,
		article.UpdatedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}
	return nil
}

// Delete removes an article
func (r *MySQLArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article")
	}

	return checkRowsAffected(result, "delete article")
}

// Get retrieves an article with its author summary
func (r *MySQLArticleRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	query := articleSelect + ` WHERE a.id = ?`

	article, err := scanMySQLArticle(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article by id")
	}

	return article, nil
}

// List returns articles newest first
func (r *MySQLArticleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Article, error) {
	querier := database.GetTx(ctx, r.db)

	query := articleSelect + `
			  ORDER BY a.created_at DESC, a.id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer rows.Close() //nolint:errcheck

	articles := make([]*domain.Article, 0)
	for rows.Next() {
		article, err := scanMySQLArticle(rows)
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

func scanMySQLArticle(row rowScanner) (*domain.Article, error) {
	var article domain.Article
	var author domain.Author
	var idBytes, authorIDBytes []byte
	err := row.Scan(&idBytes, &authorIDBytes, &article.Title, &article.Content, &article.Published,
		&article.CreatedAt, &article.UpdatedAt, &author.Name, &author.Email)
	if err != nil {
		return nil, err
	}

	if err := article.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal article id")
	}
	if err := article.AuthorID.UnmarshalBinary(authorIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal author id")
	}

	author.ID = article.AuthorID
	article.Author = &author
	return &article, nil
}
