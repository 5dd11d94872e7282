package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/articles/internal/article/domain"
	articleMocks "github.com/allisson/articles/internal/article/usecase/mocks"
	authDomain "github.com/allisson/articles/internal/auth/domain"
	metricsMocks "github.com/allisson/articles/internal/metrics/mocks"
)

func TestArticleUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	identity := &authDomain.Identity{UserID: uuid.Must(uuid.NewV7()), Role: authDomain.EditorRole}
	id := uuid.Must(uuid.NewV7())
	article := &domain.Article{ID: id}

	expect := func(m *metricsMocks.MockBusinessMetrics, operation, status string) {
		m.On("RecordOperation", ctx, "articles", operation, status).Return().Once()
		m.On("RecordDuration", ctx, "articles", operation, mock.AnythingOfType("time.Duration"), status).
			Return().
			Once()
	}

	t.Run("Create success", func(t *testing.T) {
		next := articleMocks.NewMockUseCase(t)
		m := metricsMocks.NewMockBusinessMetrics(t)
		uc := NewArticleUseCaseWithMetrics(next, m)
		input := &domain.CreateArticleInput{Title: "t", Content: "c"}

		next.On("Create", ctx, identity, input).Return(article, nil).Once()
		expect(m, "article_create", "success")

		res, err := uc.Create(ctx, identity, input)
		assert.NoError(t, err)
		assert.Equal(t, article, res)
	})

	t.Run("Get error", func(t *testing.T) {
		next := articleMocks.NewMockUseCase(t)
		m := metricsMocks.NewMockBusinessMetrics(t)
		uc := NewArticleUseCaseWithMetrics(next, m)

		next.On("Get", ctx, identity, id).Return(nil, domain.ErrArticleNotFound).Once()
		expect(m, "article_get", "error")

		_, err := uc.Get(ctx, identity, id)
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	})

	t.Run("List success", func(t *testing.T) {
		next := articleMocks.NewMockUseCase(t)
		m := metricsMocks.NewMockBusinessMetrics(t)
		uc := NewArticleUseCaseWithMetrics(next, m)

		next.On("List", ctx, identity, 0, 50).Return([]*domain.Article{article}, nil).Once()
		expect(m, "article_list", "success")

		res, err := uc.List(ctx, identity, 0, 50)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("Update error", func(t *testing.T) {
		next := articleMocks.NewMockUseCase(t)
		m := metricsMocks.NewMockBusinessMetrics(t)
		uc := NewArticleUseCaseWithMetrics(next, m)
		input := &domain.UpdateArticleInput{}

		next.On("Update", ctx, identity, id, input).Return(nil, authDomain.ErrNotOwner).Once()
		expect(m, "article_update", "error")

		_, err := uc.Update(ctx, identity, id, input)
		assert.ErrorIs(t, err, authDomain.ErrNotOwner)
	})

	t.Run("Delete error", func(t *testing.T) {
		next := articleMocks.NewMockUseCase(t)
		m := metricsMocks.NewMockBusinessMetrics(t)
		uc := NewArticleUseCaseWithMetrics(next, m)

		next.On("Delete", ctx, identity, id).Return(errors.New("boom")).Once()
		expect(m, "article_delete", "error")

		assert.Error(t, uc.Delete(ctx, identity, id))
	})
}
