// Package mocks provides testify mocks for the article use case interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/articles/internal/article/domain"
	authDomain "github.com/allisson/articles/internal/auth/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUseCase is a mock implementation of usecase.UseCase
type MockUseCase struct {
	mock.Mock
}

// NewMockUseCase creates a MockUseCase that asserts its expectations on cleanup.
func NewMockUseCase(t testingT) *MockUseCase {
	m := &MockUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUseCase) Create(
	ctx context.Context,
	identity *authDomain.Identity,
	input *domain.CreateArticleInput,
) (*domain.Article, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockUseCase) Get(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
) (*domain.Article, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockUseCase) List(
	ctx context.Context,
	identity *authDomain.Identity,
	offset, limit int,
) ([]*domain.Article, error) {
	args := m.Called(ctx, identity, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}

func (m *MockUseCase) Update(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
	input *domain.UpdateArticleInput,
) (*domain.Article, error) {
	args := m.Called(ctx, identity, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockUseCase) Delete(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

// MockArticleRepository is a mock implementation of usecase.ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

// NewMockArticleRepository creates a MockArticleRepository that asserts its expectations on cleanup.
func NewMockArticleRepository(t testingT) *MockArticleRepository {
	m := &MockArticleRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) *domain.Article); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Article, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Article), args.Error(1)
}
