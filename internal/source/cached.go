package source

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"newsdigest/internal/cache"
)

// CachedSearcher memoizes search results per query. Cache errors never fail a search.
type CachedSearcher struct {
	next  NewsSearcher
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedSearcher(next NewsSearcher, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedSearcher {
	if log == nil {
		log = slog.Default()
	}
	return &CachedSearcher{next: next, cache: c, ttl: ttl, log: log}
}

func (s *CachedSearcher) Search(ctx context.Context, q Query) ([]Headline, error) {
	// Results are only shared between callers presenting the same key; the key is hashed.
	key := cache.GenerateCacheKey("news", q.Text, q.APIKey)

	if data, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("news cache read failed", "err", err)
	} else if data != nil {
		var cached []Headline
		uerr := json.Unmarshal(data, &cached)
		if uerr == nil {
			s.log.Debug("news cache hit", "query", q.Text, "count", len(cached))
			return cached, nil
		}
		s.log.Warn("failed to unmarshal cached headlines", "err", uerr)
	}

	headlines, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(headlines)
	if err != nil {
		s.log.Warn("failed to marshal headlines, skipping cache", "err", err)
		return headlines, nil
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn("failed to cache headlines", "err", err)
	}
	return headlines, nil
}
