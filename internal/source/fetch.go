package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxPageBytes bounds how much of a fetched page is read. Larger pages are rejected.
const maxPageBytes = 5 << 20

// Fetcher downloads a page and returns its body as text.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, maxBytes: maxPageBytes}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingInput, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %w", ErrUpstream, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetch %s: status %d", ErrUpstream, url, resp.StatusCode)
	}
	if resp.ContentLength > f.maxBytes {
		return "", fmt.Errorf("%w: fetch %s: page exceeds %d bytes", ErrUpstream, url, f.maxBytes)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrUpstream, url, err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("%w: fetch %s: page exceeds %d bytes", ErrUpstream, url, f.maxBytes)
	}
	return string(body), nil
}
