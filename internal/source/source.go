// Package source turns a user's selection (an upload, pasted text, a URL, a news
// search or the headline listing) into the plain text that gets analysed.
package source

import (
	"context"
	"errors"
	"strings"
)

// Kind names where content comes from.
type Kind string

const (
	KindUpload    Kind = "upload"
	KindText      Kind = "text"
	KindURL       Kind = "url"
	KindNews      Kind = "news"
	KindHeadlines Kind = "headlines"
)

var (
	ErrUnknownKind   = errors.New("unknown content source")
	ErrMissingAPIKey = errors.New("news api key required")
	ErrMissingInput  = errors.New("content source input missing")
	ErrInvalidURL    = errors.New("url must be absolute http(s)")
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrUpstream marks failures of a remote source (transport, status, body).
	ErrUpstream = errors.New("upstream source failed")
)

// Headline is one listing entry. Summary may be a placeholder when upstream has none.
type Headline struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
}

// Titles joins headline titles with newlines, keeping upstream order.
func Titles(headlines []Headline) string {
	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}
	return strings.Join(titles, "\n")
}

// Query is a news search. APIKey is only used when the searcher has no configured key.
type Query struct {
	Text   string
	APIKey string
}

type NewsSearcher interface {
	Search(ctx context.Context, q Query) ([]Headline, error)
}

type HeadlineScraper interface {
	Headlines(ctx context.Context) ([]Headline, error)
}

type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
