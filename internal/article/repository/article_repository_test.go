package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/articles/internal/article/domain"
)

var articleRowColumns = []string{
	"id", "author_id", "title", "content", "published", "created_at", "updated_at", "name", "email",
}

func newTestArticle() *domain.Article {
	now := time.Now().UTC()
	return &domain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		AuthorID:  uuid.Must(uuid.NewV7()),
		Title:     "Hello",
		Content:   "World",
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func marshalID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestPostgreSQLArticleRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)
		article := newTestArticle()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
			WithArgs(article.ID, article.AuthorID, article.Title, article.Content, article.Published,
				article.CreatedAt, article.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), article))
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
			WillReturnError(errors.New("foreign key violation"))

		assert.ErrorContains(t, repo.Create(context.Background(), newTestArticle()), "failed to create article")
	})
}

func TestPostgreSQLArticleRepository_Get(t *testing.T) {
	t.Run("Success_WithAuthor", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)
		article := newTestArticle()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).
			WithArgs(article.ID).
			WillReturnRows(sqlmock.NewRows(articleRowColumns).AddRow(
				article.ID.String(), article.AuthorID.String(), article.Title, article.Content, true,
				article.CreatedAt, article.UpdatedAt, "Editor User", "editor@editor.com",
			))

		found, err := repo.Get(context.Background(), article.ID)
		require.NoError(t, err)
		assert.Equal(t, article.ID, found.ID)
		assert.True(t, found.Published)
		require.NotNil(t, found.Author)
		assert.Equal(t, article.AuthorID, found.Author.ID)
		assert.Equal(t, "Editor User", found.Author.Name)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = $1")).
			WillReturnRows(sqlmock.NewRows(articleRowColumns))

		_, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})
}

func TestPostgreSQLArticleRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)
		article := newTestArticle()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
			WithArgs(article.Title, article.Content, article.Published, article.UpdatedAt, article.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), article))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), newTestArticle()), domain.ErrArticleNotFound)
	})
}

func TestPostgreSQLArticleRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLArticleRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), domain.ErrArticleNotFound)
}

func TestPostgreSQLArticleRepository_List(t *testing.T) {
	t.Run("Success_NewestFirst", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)
		newer := newTestArticle()
		older := newTestArticle()
		older.CreatedAt = newer.CreatedAt.Add(-time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.created_at DESC, a.id DESC")).
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows(articleRowColumns).
				AddRow(newer.ID.String(), newer.AuthorID.String(), newer.Title, newer.Content, false,
					newer.CreatedAt, newer.UpdatedAt, "A", "a@a.com").
				AddRow(older.ID.String(), older.AuthorID.String(), older.Title, older.Content, true,
					older.CreatedAt, older.UpdatedAt, "B", "b@b.com"))

		articles, err := repo.List(context.Background(), 0, 50)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, newer.ID, articles[0].ID)
		assert.Equal(t, older.ID, articles[1].ID)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLArticleRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.created_at DESC")).
			WillReturnRows(sqlmock.NewRows(articleRowColumns))

		articles, err := repo.List(context.Background(), 0, 50)
		require.NoError(t, err)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})
}

func TestMySQLArticleRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLArticleRepository(db)
	article := newTestArticle()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(marshalID(t, article.ID), marshalID(t, article.AuthorID), article.Title, article.Content,
			article.Published, article.CreatedAt, article.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(context.Background(), article))
}

func TestMySQLArticleRepository_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLArticleRepository(db)
		article := newTestArticle()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = ?")).
			WithArgs(marshalID(t, article.ID)).
			WillReturnRows(sqlmock.NewRows(articleRowColumns).AddRow(
				marshalID(t, article.ID), marshalID(t, article.AuthorID), article.Title, article.Content, int64(1),
				article.CreatedAt, article.UpdatedAt, "Editor User", "editor@editor.com",
			))

		found, err := repo.Get(context.Background(), article.ID)
		require.NoError(t, err)
		assert.Equal(t, article.ID, found.ID)
		assert.Equal(t, article.AuthorID, found.Author.ID)
		assert.True(t, found.Published)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLArticleRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE a.id = ?")).
			WillReturnRows(sqlmock.NewRows(articleRowColumns))

		_, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})
}

func TestMySQLArticleRepository_UpdateDeleteList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLArticleRepository(db)
	article := newTestArticle()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE articles SET")).
		WithArgs(article.Title, article.Content, article.Published, article.UpdatedAt, marshalID(t, article.ID)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM articles WHERE id = ?")).
		WithArgs(marshalID(t, article.ID)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ? OFFSET ?")).
		WithArgs(10, 5).
		WillReturnRows(sqlmock.NewRows(articleRowColumns).AddRow(
			marshalID(t, article.ID), marshalID(t, article.AuthorID), article.Title, article.Content, int64(0),
			article.CreatedAt, article.UpdatedAt, "Editor User", "editor@editor.com",
		))

	assert.NoError(t, repo.Update(context.Background(), article))
	assert.NoError(t, repo.Delete(context.Background(), article.ID))

	articles, err := repo.List(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.False(t, articles[0].Published)
}
