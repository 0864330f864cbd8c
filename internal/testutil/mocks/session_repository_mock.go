package mocks

import (
	"context"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, session models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetOwned(ctx context.Context, id string, ownerID string) (*models.Session, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) EndOwned(ctx context.Context, id string, ownerID string, end models.SessionEnd) error {
	args := m.Called(ctx, id, ownerID, end)
	return args.Error(0)
}
