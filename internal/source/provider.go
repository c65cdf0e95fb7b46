package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Selector is a user's choice of content. Only the fields of its Kind are read.
type Selector struct {
	Kind     Kind
	Text     string
	URL      string
	Query    string
	APIKey   string
	Filename string
	Data     []byte
}

// Provider resolves a Selector to text.
type Provider struct {
	news      NewsSearcher
	headlines HeadlineScraper
	pages     PageFetcher
}

func NewProvider(news NewsSearcher, headlines HeadlineScraper, pages PageFetcher) *Provider {
	return &Provider{news: news, headlines: headlines, pages: pages}
}

// Load returns the text of sel. News and headline listings are flattened to their titles.
func (p *Provider) Load(ctx context.Context, sel Selector) (string, error) {
	switch sel.Kind {
	case KindUpload:
		return DecodeUpload(sel.Filename, sel.Data)
	case KindText:
		return sel.Text, nil
	case KindURL:
		if strings.TrimSpace(sel.URL) == "" {
			return "", fmt.Errorf("%w: url", ErrMissingInput)
		}
		if !validURL(sel.URL) {
			return "", fmt.Errorf("%w: %q", ErrInvalidURL, sel.URL)
		}
		return p.pages.Fetch(ctx, sel.URL)
	case KindNews:
		items, err := p.news.Search(ctx, Query{Text: sel.Query, APIKey: sel.APIKey})
		if err != nil {
			return "", err
		}
		return Titles(items), nil
	case KindHeadlines:
		items, err := p.headlines.Headlines(ctx)
		if err != nil {
			return "", err
		}
		return Titles(items), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, sel.Kind)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Search exposes the underlying news search.
func (p *Provider) Search(ctx context.Context, q Query) ([]Headline, error) {
	return p.news.Search(ctx, q)
}

// Headlines exposes the underlying listing scrape.
func (p *Provider) Headlines(ctx context.Context) ([]Headline, error) {
	return p.headlines.Headlines(ctx)
}

// Loader is the read side of a Provider.
type Loader interface {
	Load(ctx context.Context, sel Selector) (string, error)
	Search(ctx context.Context, q Query) ([]Headline, error)
	Headlines(ctx context.Context) ([]Headline, error)
}
