package mocks

import (
	"context"
	"time"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockPuzzleRepository is a mock implementation of repository.PuzzleRepository
type MockPuzzleRepository struct {
	mock.Mock
}

func (m *MockPuzzleRepository) Insert(ctx context.Context, puzzle models.Puzzle) error {
	args := m.Called(ctx, puzzle)
	return args.Error(0)
}

func (m *MockPuzzleRepository) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) GetOwned(ctx context.Context, id string, ownerID string) (*models.Puzzle, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) GetActive(ctx context.Context, id string) (*models.Puzzle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) List(ctx context.Context, filter models.PuzzleFilter) ([]models.Puzzle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) UpdateOwned(ctx context.Context, id string, ownerID string, changes models.PuzzleChanges) error {
	args := m.Called(ctx, id, ownerID, changes)
	return args.Error(0)
}

func (m *MockPuzzleRepository) DeactivateOwned(ctx context.Context, id string, ownerID string, at time.Time) error {
	args := m.Called(ctx, id, ownerID, at)
	return args.Error(0)
}
