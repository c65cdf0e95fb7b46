package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GNewsOptions configures the search endpoint. Zero values fall back to en/us/10.
type GNewsOptions struct {
	BaseURL string
	APIKey  string
	Lang    string
	Country string
	Max     int
}

// GNewsClient searches the GNews v4 API.
type GNewsClient struct {
	client *http.Client
	opts   GNewsOptions
}

func NewGNewsClient(client *http.Client, opts GNewsOptions) *GNewsClient {
	if client == nil {
		client = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://gnews.io/api/v4"
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	if opts.Country == "" {
		opts.Country = "us"
	}
	if opts.Max <= 0 {
		opts.Max = 10
	}
	return &GNewsClient{client: client, opts: opts}
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Search runs one query. No matching articles is an empty slice, not an error.
func (c *GNewsClient) Search(ctx context.Context, q Query) ([]Headline, error) {
	key := c.opts.APIKey
	if key == "" {
		key = q.APIKey
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, fmt.Errorf("%w: search query", ErrMissingInput)
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("lang", c.opts.Lang)
	params.Set("country", c.opts.Country)
	params.Set("max", strconv.Itoa(c.opts.Max))
	params.Set("token", key)
	endpoint := strings.TrimRight(c.opts.BaseURL, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error carries the token in the query string.
		return nil, fmt.Errorf("%w: gnews search: %v", ErrUpstream, redact(err, key))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: gnews search: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: gnews decode: %w", ErrUpstream, err)
	}

	headlines := make([]Headline, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		headlines = append(headlines, Headline{Title: a.Title, Link: a.URL, Summary: a.Description})
	}
	return headlines, nil
}

func redact(err error, secret string) string {
	return strings.ReplaceAll(err.Error(), secret, "REDACTED")
}
