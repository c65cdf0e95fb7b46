package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noDescription = "No description available."

// ScraperOptions points the scraper at a listing page.
type ScraperOptions struct {
	URL string
	// BaseURL is prefixed to the relative links found on the page.
	BaseURL   string
	Selector  string
	UserAgent string
}

// Scraper extracts headlines from a news listing page.
type Scraper struct {
	client *http.Client
	opts   ScraperOptions
}

func NewScraper(client *http.Client, opts ScraperOptions) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{client: client, opts: opts}
}

// Headlines fetches the listing once. A page with no matching elements yields no headlines
// and no error.
func (s *Scraper) Headlines(ctx context.Context) ([]Headline, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.URL, nil)
	if err != nil {
		return nil, err
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: scrape %s: %w", ErrUpstream, s.opts.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: scrape %s: status %d", ErrUpstream, s.opts.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrUpstream, s.opts.URL, err)
	}
	return s.parse(doc), nil
}

func (s *Scraper) parse(doc *goquery.Document) []Headline {
	headlines := []Headline{}
	doc.Find(s.opts.Selector).Each(func(_ int, item *goquery.Selection) {
		h := Headline{
			Title:   strings.TrimSpace(item.Text()),
			Summary: noDescription,
		}
		if href, ok := item.Find("a").First().Attr("href"); ok {
			h.Link = s.opts.BaseURL + href
		}
		if p := item.NextAllFiltered("p").First(); p.Length() > 0 {
			h.Summary = p.Text()
		}
		headlines = append(headlines, h)
	})
	return headlines
}
