// Package facebook asks the Facebook Graph API to re-scrape a page so link
// previews pick up new Open Graph data.
package facebook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eringen/sharecare/ratelimit"
)

// DefaultEndpoint is the Graph API root that accepts scrape requests.
const DefaultEndpoint = "https://graph.facebook.com/"

// Scraper issues scrape requests. The zero value is not usable; use New.
type Scraper struct {
	endpoint string
	token    string
	client   *http.Client
	limiter  *ratelimit.Limiter
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithEndpoint overrides the Graph API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *Scraper) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithAccessToken sends access_token with every request.
func WithAccessToken(token string) Option {
	return func(s *Scraper) {
		s.token = token
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout sets the request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client = &http.Client{Timeout: d}
		}
	}
}

// WithMinInterval skips requests for a URL that was scraped less than d ago.
func WithMinInterval(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.limiter = ratelimit.New(1, d)
		}
	}
}

// New returns a Scraper for DefaultEndpoint with a 10 second timeout.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the interval limiter.
func (s *Scraper) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// RequestURL builds the scrape URL for pageURL.
func (s *Scraper) RequestURL(pageURL string) (string, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("facebook: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("id", pageURL)
	q.Set("scrape", "true")
	if s.token != "" {
		q.Set("access_token", s.token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Scrape asks Facebook to re-fetch pageURL. It reports whether a request was
// sent; requests inside the minimum interval are skipped without error.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (bool, error) {
	if pageURL == "" {
		return false, nil
	}
	if s.limiter != nil && !s.limiter.Allow(pageURL) {
		return false, nil
	}
	reqURL, err := s.RequestURL(pageURL)
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("facebook: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("facebook: scrape %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return true, fmt.Errorf("facebook: scrape %s: status %d: %s", pageURL, resp.StatusCode, body)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return true, nil
}
