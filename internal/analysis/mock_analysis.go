package analysis

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newsdigest/internal/sentiment"
)

// MockAnswerer is a mock implementation of Answerer using testify/mock.
type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Run(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// MockScorer is a mock implementation of Scorer using testify/mock.
type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, method sentiment.Method, text string) (sentiment.Result, error) {
	args := m.Called(ctx, method, text)
	return args.Get(0).(sentiment.Result), args.Error(1)
}

// MockAnalyzer is a mock implementation of Analyzer using testify/mock.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, in Input) (Report, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(Report), args.Error(1)
}
