package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gnewsServer(t *testing.T, status int, payload any) (*httptest.Server, *url.Values) {
	t.Helper()
	seen := &url.Values{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/search", r.URL.Path)
		*seen = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestGNewsSearch(t *testing.T) {
	payload := map[string]any{
		"totalArticles": 2,
		"articles": []map[string]any{
			{"title": "Fed Holds Rates Steady", "description": "Rates unchanged.", "url": "https://example.com/fed"},
			{"title": "Oil Slides", "description": "Crude falls.", "url": "https://example.com/oil"},
		},
	}
	srv, seen := gnewsServer(t, http.StatusOK, payload)

	c := NewGNewsClient(srv.Client(), GNewsOptions{BaseURL: srv.URL + "/api/v4/", APIKey: "cfg-key"})
	got, err := c.Search(context.Background(), Query{Text: "fed rates", APIKey: "req-key"})
	require.NoError(t, err)

	assert.Equal(t, []Headline{
		{Title: "Fed Holds Rates Steady", Link: "https://example.com/fed", Summary: "Rates unchanged."},
		{Title: "Oil Slides", Link: "https://example.com/oil", Summary: "Crude falls."},
	}, got)
	assert.Equal(t, "fed rates", seen.Get("q"))
	assert.Equal(t, "en", seen.Get("lang"))
	assert.Equal(t, "us", seen.Get("country"))
	assert.Equal(t, "10", seen.Get("max"))
	assert.Equal(t, "cfg-key", seen.Get("token"), "configured key wins over the request key")
}

func TestGNewsSearchFallsBackToRequestKey(t *testing.T) {
	srv, seen := gnewsServer(t, http.StatusOK, map[string]any{"totalArticles": 0, "articles": []any{}})

	c := NewGNewsClient(srv.Client(), GNewsOptions{BaseURL: srv.URL + "/api/v4", Lang: "de", Country: "de", Max: 3})
	got, err := c.Search(context.Background(), Query{Text: "dax", APIKey: "req-key"})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "req-key", seen.Get("token"))
	assert.Equal(t, "de", seen.Get("lang"))
	assert.Equal(t, "3", seen.Get("max"))
}

func TestGNewsSearchErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := NewGNewsClient(nil, GNewsOptions{BaseURL: "http://unused"})
		_, err := c.Search(context.Background(), Query{Text: "fed"})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("missing query", func(t *testing.T) {
		c := NewGNewsClient(nil, GNewsOptions{BaseURL: "http://unused", APIKey: "k"})
		_, err := c.Search(context.Background(), Query{Text: "  "})
		assert.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("upstream status", func(t *testing.T) {
		srv, _ := gnewsServer(t, http.StatusForbidden, map[string]any{"errors": []string{"bad token"}})
		c := NewGNewsClient(srv.Client(), GNewsOptions{BaseURL: srv.URL + "/api/v4", APIKey: "secret-token"})
		_, err := c.Search(context.Background(), Query{Text: "fed"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("transport error hides key", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		c := NewGNewsClient(nil, GNewsOptions{BaseURL: base, APIKey: "secret-token"})
		_, err := c.Search(context.Background(), Query{Text: "fed"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUpstream))
		assert.False(t, strings.Contains(err.Error(), "secret-token"), "error leaked the api key: %v", err)
	})
}
