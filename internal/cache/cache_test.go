package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Errorf("expected no error on Set, got %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected miss, got %q", got)
	}
	if err := c.Close(); err != nil {
		t.Errorf("expected no error on Close, got %v", err)
	}
}

func TestGenerateCacheKey(t *testing.T) {
	a := GenerateCacheKey("news", "fed rates", "key-a")
	b := GenerateCacheKey("news", "fed rates", "key-a")
	if a != b {
		t.Errorf("expected stable key, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected sha256 hex key, got %d chars", len(a))
	}
	if strings.Contains(a, "key-a") {
		t.Error("api key must not appear in the cache key")
	}

	tests := []struct {
		name  string
		parts []any
	}{
		{"different query", []any{"news", "oil", "key-a"}},
		{"different api key", []any{"news", "fed rates", "key-b"}},
		{"no api key", []any{"news", "fed rates", ""}},
		{"parts not concatenated", []any{"news", "fed rateskey-a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if GenerateCacheKey(tt.parts...) == a {
				t.Errorf("expected a different key for %v", tt.parts)
			}
		})
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	if _, err := NewRedisCache("127.0.0.1:1", ""); err == nil {
		t.Error("expected connection error for a closed port")
	}
}
