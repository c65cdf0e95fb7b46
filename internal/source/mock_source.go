package source

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNewsSearcher is a mock implementation of NewsSearcher using testify/mock.
type MockNewsSearcher struct {
	mock.Mock
}

func (m *MockNewsSearcher) Search(ctx context.Context, q Query) ([]Headline, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Headline), args.Error(1)
}

// MockHeadlineScraper is a mock implementation of HeadlineScraper using testify/mock.
type MockHeadlineScraper struct {
	mock.Mock
}

func (m *MockHeadlineScraper) Headlines(ctx context.Context) ([]Headline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Headline), args.Error(1)
}

// MockPageFetcher is a mock implementation of PageFetcher using testify/mock.
type MockPageFetcher struct {
	mock.Mock
}

func (m *MockPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// MockLoader is a mock implementation of Loader using testify/mock.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, sel Selector) (string, error) {
	args := m.Called(ctx, sel)
	return args.String(0), args.Error(1)
}

func (m *MockLoader) Search(ctx context.Context, q Query) ([]Headline, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Headline), args.Error(1)
}

func (m *MockLoader) Headlines(ctx context.Context) ([]Headline, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Headline), args.Error(1)
}
