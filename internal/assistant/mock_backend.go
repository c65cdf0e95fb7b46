package assistant

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of Backend using testify/mock.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Submit(ctx context.Context, assistantID, text string) (Job, error) {
	args := m.Called(ctx, assistantID, text)
	return args.Get(0).(Job), args.Error(1)
}

func (m *MockBackend) Fetch(ctx context.Context, job Job) (Job, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(Job), args.Error(1)
}

func (m *MockBackend) Messages(ctx context.Context, job Job) ([]Message, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}
