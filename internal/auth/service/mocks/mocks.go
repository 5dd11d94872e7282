// Package mocks provides testify mocks for the auth service interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/allisson/articles/internal/auth/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordService is a mock implementation of service.PasswordService
type MockPasswordService struct {
	mock.Mock
}

// NewMockPasswordService creates a MockPasswordService that asserts its expectations on cleanup.
func NewMockPasswordService(t testingT) *MockPasswordService {
	m := &MockPasswordService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordService) Hash(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) Verify(plainPassword, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}

// MockSessionService is a mock implementation of service.SessionService
type MockSessionService struct {
	mock.Mock
}

// NewMockSessionService creates a MockSessionService that asserts its expectations on cleanup.
func NewMockSessionService(t testingT) *MockSessionService {
	m := &MockSessionService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionService) Issue(identity *domain.Identity) (*domain.Session, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Parse(token string) (*domain.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}
