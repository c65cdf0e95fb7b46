package source

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsdigest/internal/cache"
	"newsdigest/internal/logger"
)

func TestCachedSearcher(t *testing.T) {
	ctx := context.Background()
	q := Query{Text: "fed", APIKey: "k"}
	key := cache.GenerateCacheKey("news", "fed", "k")
	fresh := []Headline{{Title: "Fed holds", Link: "https://example.com/fed"}}
	freshJSON, _ := json.Marshal(fresh)

	tests := []struct {
		name    string
		setup   func(*cache.MockCache, *MockNewsSearcher)
		want    []Headline
		wantErr bool
	}{
		{
			name: "hit skips upstream",
			setup: func(c *cache.MockCache, _ *MockNewsSearcher) {
				c.On("Get", mock.Anything, key).Return(freshJSON, nil).Once()
			},
			want: fresh,
		},
		{
			name: "miss stores result",
			setup: func(c *cache.MockCache, n *MockNewsSearcher) {
				c.On("Get", mock.Anything, key).Return(nil, nil).Once()
				n.On("Search", mock.Anything, q).Return(fresh, nil).Once()
				c.On("Set", mock.Anything, key, freshJSON, time.Minute).Return(nil).Once()
			},
			want: fresh,
		},
		{
			name: "cache failures are bypassed",
			setup: func(c *cache.MockCache, n *MockNewsSearcher) {
				c.On("Get", mock.Anything, key).Return(nil, errors.New("redis down")).Once()
				n.On("Search", mock.Anything, q).Return(fresh, nil).Once()
				c.On("Set", mock.Anything, key, freshJSON, time.Minute).Return(errors.New("redis down")).Once()
			},
			want: fresh,
		},
		{
			name: "corrupt entry refetches",
			setup: func(c *cache.MockCache, n *MockNewsSearcher) {
				c.On("Get", mock.Anything, key).Return([]byte("{not json"), nil).Once()
				n.On("Search", mock.Anything, q).Return(fresh, nil).Once()
				c.On("Set", mock.Anything, key, freshJSON, time.Minute).Return(nil).Once()
			},
			want: fresh,
		},
		{
			name: "search error is not cached",
			setup: func(c *cache.MockCache, n *MockNewsSearcher) {
				c.On("Get", mock.Anything, key).Return(nil, nil).Once()
				n.On("Search", mock.Anything, q).Return(nil, ErrUpstream).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(cache.MockCache)
			next := new(MockNewsSearcher)
			tt.setup(c, next)

			s := NewCachedSearcher(next, c, time.Minute, logger.Discard())
			got, err := s.Search(ctx, q)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			c.AssertExpectations(t)
			next.AssertExpectations(t)
		})
	}
}

// memCache is an in-process cache.Cache.
type memCache map[string][]byte

func (m memCache) Get(_ context.Context, key string) ([]byte, error) { return m[key], nil }

func (m memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m[key] = value
	return nil
}

func (m memCache) Close() error { return nil }

func TestCachedSearcherKeylessQueryMisses(t *testing.T) {
	ctx := context.Background()
	c := memCache{}

	// No server key: only the request key authorizes a search.
	gnews := new(MockNewsSearcher)
	gnews.On("Search", mock.Anything, Query{Text: "fed", APIKey: "paid-key"}).
		Return([]Headline{{Title: "Fed holds"}}, nil).Once()
	gnews.On("Search", mock.Anything, Query{Text: "fed"}).Return(nil, ErrMissingAPIKey).Once()

	s := NewCachedSearcher(gnews, c, time.Minute, logger.Discard())

	got, err := s.Search(ctx, Query{Text: "fed", APIKey: "paid-key"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Search(ctx, Query{Text: "fed"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, got)

	got, err = s.Search(ctx, Query{Text: "fed", APIKey: "paid-key"})
	require.NoError(t, err)
	assert.Len(t, got, 1, "same key is served from cache")

	assert.Len(t, c, 1)
	gnews.AssertExpectations(t)
}
