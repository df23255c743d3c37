// Package fetch retrieves a single document over HTTP. It is the only part
// of the system that touches the network; the analysis pipeline itself never
// does.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultMaxBody   = 10 << 20 // 10 MiB
	defaultUserAgent = "PageLens/1.0"
)

// Page is one retrieved document. FinalURL reflects any redirects.
type Page struct {
	HTML      []byte
	FinalURL  string
	FetchedAt time.Time
}

// Fetcher is a reusable HTTP retriever with connection pooling.
type Fetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
}

// New builds a Fetcher with pooled keep-alive connections.
func New() *Fetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
		maxBody:   defaultMaxBody,
		userAgent: defaultUserAgent,
	}
}

// SetTimeout adjusts the per-request timeout.
func (f *Fetcher) SetTimeout(d time.Duration) {
	f.client.Timeout = d
}

// Fetch retrieves rawURL and returns its body. Non-2xx statuses and
// non-HTTP schemes are terminal errors; there are no retries here.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", parsed.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", parsed.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := parsed.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{
		HTML:      body,
		FinalURL:  finalURL,
		FetchedAt: time.Now().UTC(),
	}, nil
}
