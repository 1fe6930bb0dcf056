// Package crawler fetches support-program announcements from the Artnuri
// listing site: a paginated search endpoint for lightweight stubs, and a
// per-announcement detail page for the structured fields. All selector and
// label knowledge about the site's markup lives in this package, so a
// markup change never touches the sync or cleanup logic.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultBaseURL is the production listing site.
	DefaultBaseURL = "https://artnuri.or.kr"
	// DefaultListKey identifies the support-program board on the site.
	DefaultListKey = "2301170002"
	// DefaultPageUnit is the site's default page size.
	DefaultPageUnit = 10
	// DefaultMaxPages caps pagination as a safety valve against
	// malformed responses, not as a normal termination path.
	DefaultMaxPages = 200
)

// Crawler fetches listing and detail pages from one Artnuri instance.
type Crawler struct {
	baseURL  string
	listKey  string
	pageUnit int
	maxPages int
	client   *http.Client
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithBaseURL overrides the site base URL. Used by tests to point the
// crawler at a local server.
func WithBaseURL(u string) Option {
	return func(c *Crawler) { c.baseURL = u }
}

// WithPageUnit overrides the listing page size.
func WithPageUnit(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.pageUnit = n
		}
	}
}

// WithMaxPages overrides the pagination safety ceiling.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Crawler) { c.client = hc }
}

// New creates a Crawler with production defaults.
func New(opts ...Option) *Crawler {
	c := &Crawler{
		baseURL:  DefaultBaseURL,
		listKey:  DefaultListKey,
		pageUnit: DefaultPageUnit,
		maxPages: DefaultMaxPages,
		client:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Crawler) listURL(pageIndex int) string {
	return fmt.Sprintf("%s/crawler/info/search.do?key=%s&pageUnit=%d&pageIndex=%d&sc_limitAt=Y",
		c.baseURL, c.listKey, c.pageUnit, pageIndex)
}

func (c *Crawler) detailURL(docID, source, seNo string) string {
	return fmt.Sprintf("%s/crawler/info/view.do?docid=%s&key=%s&source=%s&seNo=%s",
		c.baseURL, docID, c.listKey, url.QueryEscape(source), seNo)
}

// fetchDocument GETs a page and parses it into a goquery document,
// converting the body to UTF-8 based on the Content-Type charset.
func (c *Crawler) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if r, convErr := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); convErr == nil {
		body = r
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}
