// Package collect fetches pages and extracts text and structured records
// from them. Sources abstract where page HTML comes from so workflows can
// run against live URLs or pre-captured fixtures.
package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	fetchTimeout = 30 * time.Second
	maxPageSize  = 10 * 1024 * 1024 // 10MB limit for fetched pages
	userAgent    = "scribe/1.0"
)

// Page is a fetched HTML document.
type Page struct {
	URL       string
	HTML      string
	FetchedAt time.Time
}

// Source produces a page for collection.
type Source interface {
	// Name identifies the source in logs and progress output
	Name() string

	// Fetch retrieves the page, honoring context cancellation
	Fetch(ctx context.Context) (*Page, error)
}

// HTTPSource fetches a page over HTTP.
type HTTPSource struct {
	name   string
	url    string
	client *http.Client
}

// NewHTTPSource creates a source that fetches the given URL.
func NewHTTPSource(name, url string) *HTTPSource {
	return &HTTPSource{
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Name returns the source name.
func (s *HTTPSource) Name() string {
	return s.name
}

// Fetch retrieves the page over HTTP.
func (s *HTTPSource) Fetch(ctx context.Context) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", s.url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, s.url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", s.url, err)
	}

	return &Page{
		URL:       s.url,
		HTML:      string(body),
		FetchedAt: time.Now(),
	}, nil
}

// StaticSource serves pre-captured HTML. Workflows use it for fixtures and
// offline runs.
type StaticSource struct {
	name string
	url  string
	html string
}

// NewStaticSource creates a source that returns the given HTML as-is.
func NewStaticSource(name, url, html string) *StaticSource {
	return &StaticSource{
		name: name,
		url:  url,
		html: html,
	}
}

// Name returns the source name.
func (s *StaticSource) Name() string {
	return s.name
}

// Fetch returns the captured page.
func (s *StaticSource) Fetch(ctx context.Context) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Page{
		URL:       s.url,
		HTML:      s.html,
		FetchedAt: time.Now(),
	}, nil
}
