package sentiment

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockScorer is a mock implementation of Scorer using testify/mock.
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, text string) (Result, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Result), args.Error(1)
}
