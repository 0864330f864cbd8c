package mocks

import (
	"context"

	"github.com/srkarthi1982/guess-the-emoji/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockPuzzleCache is a mock implementation of cache.PuzzleCache
type MockPuzzleCache struct {
	mock.Mock
}

func (m *MockPuzzleCache) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleCache) Set(ctx context.Context, p models.Puzzle) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPuzzleCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
