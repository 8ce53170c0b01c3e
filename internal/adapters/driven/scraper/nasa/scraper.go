// Package nasa scrapes the api.nasa.gov documentation pages into raw
// documents. Fetches are rate limited with a token bucket and run with
// bounded concurrency; a failed URL is recorded in the result, never retried.
package nasa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/JepStar990/plainapi/internal/core/domain"
	"github.com/JepStar990/plainapi/internal/core/ports/driven"
	"github.com/JepStar990/plainapi/internal/logger"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

const (
	defaultMaxConcurrent = 5
	defaultTimeout       = 30 * time.Second
	userAgent            = "Mozilla/5.0 (compatible; PlainAPI/1.0; +https://github.com/JepStar990/plainapi)"
)

// DefaultDocURLs are the NASA API documentation pages, keyed by API name.
var DefaultDocURLs = map[string]string{
	"apod":         "https://api.nasa.gov/#apod",
	"mars_photos":  "https://api.nasa.gov/#mars-rover-photos",
	"earth":        "https://api.nasa.gov/#earth",
	"neo":          "https://api.nasa.gov/#neo",
	"donki":        "https://api.nasa.gov/#donki",
	"insight":      "https://api.nasa.gov/#insight",
	"exoplanet":    "https://api.nasa.gov/#exoplanet",
	"techtransfer": "https://api.nasa.gov/#techtransfer",
}

// Scraper fetches documentation pages over HTTP.
type Scraper struct {
	client        *http.Client
	limiter       *rate.Limiter
	urls          map[string]string
	maxConcurrent int
}

// Option configures the scraper.
type Option func(*Scraper)

// WithHTTPClient swaps the HTTP client, used by tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithRateLimit sets the sustained request rate in requests per second.
func WithRateLimit(rps float64) Option {
	return func(s *Scraper) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), defaultMaxConcurrent)
		}
	}
}

// WithDocURLs replaces the URL set to scrape.
func WithDocURLs(urls map[string]string) Option {
	return func(s *Scraper) {
		if len(urls) > 0 {
			s.urls = urls
		}
	}
}

// WithMaxConcurrent bounds the number of in-flight fetches.
func WithMaxConcurrent(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// New creates a documentation scraper with conservative defaults.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:        &http.Client{Timeout: defaultTimeout},
		limiter:       rate.NewLimiter(rate.Limit(2.0), defaultMaxConcurrent),
		urls:          DefaultDocURLs,
		maxConcurrent: defaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScrapeAll fetches every configured documentation URL with bounded
// concurrency. Per-URL failures land in the result's error list.
func (s *Scraper) ScrapeAll(ctx context.Context) (*domain.ScrapeResult, error) {
	logger.Info("Scraping %d NASA documentation pages", len(s.urls))

	result := &domain.ScrapeResult{
		Successful: true,
		Documents:  []domain.RawDocument{},
		Errors:     []string{},
		TotalURLs:  len(s.urls),
		StartTime:  time.Now().UTC(),
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.maxConcurrent)
	)

	for name, url := range s.urls {
		wg.Add(1)
		go func(name, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			doc, err := s.Scrape(ctx, url)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
				return
			}
			result.Documents = append(result.Documents, *doc)
			result.ProcessedURLs++
		}(name, url)
	}
	wg.Wait()

	result.Successful = len(result.Errors) == 0
	result.EndTime = time.Now().UTC()
	logger.Info("Scraping completed: %d/%d URLs", result.ProcessedURLs, result.TotalURLs)

	return result, nil
}

// Scrape fetches a single URL and extracts the page text. JSON responses
// are pretty-printed and passed through untouched.
func (s *Scraper) Scrape(ctx context.Context, url string) (*domain.RawDocument, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScrapeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrScrapeFailed, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	var (
		content string
		docType domain.ContentType
	)
	if strings.Contains(contentType, "application/json") {
		content, err = prettyJSON(body)
		docType = domain.ContentJSON
	} else {
		content, err = extractText(body)
		docType = domain.ContentHTML
	}
	if err != nil {
		return nil, fmt.Errorf("extract content from %s: %w", url, err)
	}

	content = CleanText(content)
	if content == "" {
		return nil, fmt.Errorf("%w: no content extracted from %s", domain.ErrScrapeFailed, url)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	logger.Debug("Scraped %s (%d bytes)", url, len(content))

	return &domain.RawDocument{
		URL:         url,
		Content:     content,
		ContentType: docType,
		Headers:     headers,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Close releases idle connections.
func (s *Scraper) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// extractText strips chrome elements from an HTML page and returns the
// visible text.
func extractText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, nav, footer").Remove()
	return doc.Find("body").Text(), nil
}

func prettyJSON(body []byte) (string, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("parse json: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// noiseRunes are control and zero-width characters that survive HTML text
// extraction.
var noiseRunes = strings.NewReplacer(
	"\t", " ",
	"\r", " ",
	" ", " ",
	"​", " ",
	"‎", " ",
	"‏", " ",
)

// CleanText collapses a page's text into a single normalised line: blank
// lines dropped, zero-width noise removed, runs of whitespace folded to one
// space.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	cleaned := noiseRunes.Replace(strings.Join(kept, " "))
	return strings.Join(strings.Fields(cleaned), " ")
}
