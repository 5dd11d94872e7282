// Package usecase implements the article business logic, enforcing role capabilities and
// author ownership before every mutation.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/articles/internal/article/domain"
	authDomain "github.com/allisson/articles/internal/auth/domain"
	"github.com/allisson/articles/internal/database"
	apperrors "github.com/allisson/articles/internal/errors"
	outboxDomain "github.com/allisson/articles/internal/outbox/domain"
)

// UseCase defines the interface for article business logic operations.
// Every operation is performed on behalf of the given identity.
type UseCase interface {
	Create(ctx context.Context, identity *authDomain.Identity, input *domain.CreateArticleInput) (*domain.Article, error)
	Get(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, identity *authDomain.Identity, offset, limit int) ([]*domain.Article, error)
	Update(
		ctx context.Context,
		identity *authDomain.Identity,
		id uuid.UUID,
		input *domain.UpdateArticleInput,
	) (*domain.Article, error)
	Delete(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error
}

// ArticleRepository defines article repository operations
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Article, error)
}

// OutboxEventRepository defines the outbox operation needed to publish article events
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// articleEventPayload is the JSON body of article outbox events.
type articleEventPayload struct {
	ArticleID uuid.UUID `json:"article_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Title     string    `json:"title"`
	Published bool      `json:"published"`
}

// ArticleUseCase handles article-related business logic
type ArticleUseCase struct {
	txManager   database.TxManager
	articleRepo ArticleRepository
	outboxRepo  OutboxEventRepository
}

// NewArticleUseCase creates a new ArticleUseCase
func NewArticleUseCase(
	txManager database.TxManager,
	articleRepo ArticleRepository,
	outboxRepo OutboxEventRepository,
) UseCase {
	return &ArticleUseCase{
		txManager:   txManager,
		articleRepo: articleRepo,
		outboxRepo:  outboxRepo,
	}
}

// Create writes an article authored by identity and records an article.created event
func (uc *ArticleUseCase) Create(
	ctx context.Context,
	identity *authDomain.Identity,
	input *domain.CreateArticleInput,
) (*domain.Article, error) {
	if err := authDomain.RequireCapability(identity, authDomain.CreateArticlesCapability); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &domain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		AuthorID:  identity.UserID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Published: input.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created *domain.Article
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.articleRepo.Create(ctx, article); err != nil {
			return err
		}
		if err := uc.publish(ctx, outboxDomain.ArticleCreatedEvent, article); err != nil {
			return err
		}

		var err error
		created, err = uc.articleRepo.Get(ctx, article.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Get retrieves an article
func (uc *ArticleUseCase) Get(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
) (*domain.Article, error) {
	if err := authDomain.RequireCapability(identity, authDomain.ReadArticlesCapability); err != nil {
		return nil, err
	}
	return uc.articleRepo.Get(ctx, id)
}

// List retrieves articles newest first
func (uc *ArticleUseCase) List(
	ctx context.Context,
	identity *authDomain.Identity,
	offset, limit int,
) ([]*domain.Article, error) {
	if err := authDomain.RequireCapability(identity, authDomain.ReadArticlesCapability); err != nil {
		return nil, err
	}
	return uc.articleRepo.List(ctx, offset, limit)
}

// Update applies the non-nil fields of input. Only the author may update an article.
func (uc *ArticleUseCase) Update(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
	input *domain.UpdateArticleInput,
) (*domain.Article, error) {
	if err := authDomain.RequireCapability(identity, authDomain.UpdateArticlesCapability); err != nil {
		return nil, err
	}

	var updated *domain.Article
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		article, err := uc.articleRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := authDomain.RequireOwnership(identity, article.AuthorID); err != nil {
			return apperrors.Wrapf(err, "article %s", id)
		}

		if input.Title != nil {
			article.Title = strings.TrimSpace(*input.Title)
		}
		if input.Content != nil {
			article.Content = *input.Content
		}
		if input.Published != nil {
			article.Published = *input.Published
		}
		article.UpdatedAt = time.Now().UTC()

		if err := uc.articleRepo.Update(ctx, article); err != nil {
			return err
		}
		if err := uc.publish(ctx, outboxDomain.ArticleUpdatedEvent, article); err != nil {
			return err
		}

		updated = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an article. Only the author may delete an article.
func (uc *ArticleUseCase) Delete(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error {
	if err := authDomain.RequireCapability(identity, authDomain.DeleteArticlesCapability); err != nil {
		return err
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		article, err := uc.articleRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := authDomain.RequireOwnership(identity, article.AuthorID); err != nil {
			return apperrors.Wrapf(err, "article %s", id)
		}

		if err := uc.articleRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.publish(ctx, outboxDomain.ArticleDeletedEvent, article)
	})
}

func (uc *ArticleUseCase) publish(ctx context.Context, eventType string, article *domain.Article) error {
	event, err := outboxDomain.NewOutboxEvent(eventType, articleEventPayload{
		ArticleID: article.ID,
		AuthorID:  article.AuthorID,
		Title:     article.Title,
		Published: article.Published,
	})
	if err != nil {
		return err
	}

	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to create outbox event")
	}
	return nil
}
