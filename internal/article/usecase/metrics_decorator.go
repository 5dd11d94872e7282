package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/articles/internal/article/domain"
	authDomain "github.com/allisson/articles/internal/auth/domain"
	"github.com/allisson/articles/internal/metrics"
)

// articleUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type articleUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewArticleUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewArticleUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &articleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *articleUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", operation, status)
	a.metrics.RecordDuration(ctx, "articles", operation, time.Since(start), status)
}

// Create records metrics for article creation operations.
func (a *articleUseCaseWithMetrics) Create(
	ctx context.Context,
	identity *authDomain.Identity,
	input *domain.CreateArticleInput,
) (*domain.Article, error) {
	start := time.Now()
	article, err := a.next.Create(ctx, identity, input)
	a.record(ctx, "article_create", start, err)
	return article, err
}

// Get records metrics for article retrieval operations.
func (a *articleUseCaseWithMetrics) Get(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
) (*domain.Article, error) {
	start := time.Now()
	article, err := a.next.Get(ctx, identity, id)
	a.record(ctx, "article_get", start, err)
	return article, err
}

// List records metrics for article list operations.
func (a *articleUseCaseWithMetrics) List(
	ctx context.Context,
	identity *authDomain.Identity,
	offset, limit int,
) ([]*domain.Article, error) {
	start := time.Now()
	articles, err := a.next.List(ctx, identity, offset, limit)
	a.record(ctx, "article_list", start, err)
	return articles, err
}

// Update records metrics for article update operations.
func (a *articleUseCaseWithMetrics) Update(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
	input *domain.UpdateArticleInput,
) (*domain.Article, error) {
	start := time.Now()
	article, err := a.next.Update(ctx, identity, id, input)
	a.record(ctx, "article_update", start, err)
	return article, err
}

// Delete records metrics for article deletion operations.
func (a *articleUseCaseWithMetrics) Delete(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, identity, id)
	a.record(ctx, "article_delete", start, err)
	return err
}
