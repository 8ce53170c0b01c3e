// Package metadata derives chunk metadata from scraped documentation pages.
package metadata

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// DefaultDocsHost is the documentation host endpoints are extracted from.
const DefaultDocsHost = "api.nasa.gov"

// paramPatterns are the three independent parameter-name forms, unioned.
var paramPatterns = []*regexp.Regexp{
	// labelled form: "parameter: api_key" / "parameter 'date'"
	regexp.MustCompile(`(?i)parameter[\s:]+["']?(\w+)["']?`),
	// brace-enclosed typed token: "{ date } (string)"
	regexp.MustCompile(`(?i)[\s{]+(\w+)[\s}]+\(string\)`),
	// query parameter assignment: "query parameter = 'feed'"
	regexp.MustCompile(`(?i)query.*parameter.*[:=]\s*["'](\w+)["']`),
}

// Extractor derives metadata maps from raw documents.
type Extractor struct {
	docsHost string
}

// Option configures the extractor.
type Option func(*Extractor)

// WithDocsHost overrides the documentation host used for endpoint extraction.
func WithDocsHost(host string) Option {
	return func(e *Extractor) {
		if host != "" {
			e.docsHost = host
		}
	}
}

// New creates an extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{docsHost: DefaultDocsHost}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract derives the metadata map for a raw document of the given type.
// It is total: malformed URLs simply omit the api_endpoint field.
//
// Base fields are always present: source_type, document_type, scraped_at
// (RFC 3339) and url. Pages on the documentation host with a /# fragment
// marker gain api_endpoint; parameter pages gain extracted_parameters.
func (e *Extractor) Extract(doc domain.RawDocument, docType domain.DocumentType) map[string]any {
	md := map[string]any{
		"source_type":   string(doc.ContentType),
		"document_type": docType.String(),
		"scraped_at":    doc.Timestamp.UTC().Format(time.RFC3339),
		"url":           doc.URL,
	}

	if endpoint, ok := e.Endpoint(doc.URL); ok {
		md["api_endpoint"] = endpoint
	}

	if docType == domain.DocTypeParameter {
		md["extracted_parameters"] = ExtractParameters(doc.Content)
	}

	return md
}

// Endpoint returns the API endpoint named by a documentation URL's fragment
// marker, e.g. "https://api.nasa.gov/#apod" yields "apod". The second return
// is false when the URL is not on the docs host or carries no marker.
func (e *Extractor) Endpoint(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(parsed.Host, e.docsHost) {
		return "", false
	}
	if !strings.Contains(rawURL, "/#") {
		return "", false
	}

	// The marker appears either as ".../#apod" or as a bare "#" segment
	// followed by the endpoint name.
	parts := strings.Split(rawURL, "/")
	for i, part := range parts {
		if part == "#" {
			if i+1 < len(parts) && parts[i+1] != "" {
				return parts[i+1], true
			}
			return "", false
		}
		if strings.HasPrefix(part, "#") && len(part) > 1 {
			return strings.TrimPrefix(part, "#"), true
		}
	}
	return "", false
}

// ExtractParameters returns the deduplicated union of parameter names found
// by the three pattern searches, sorted for deterministic output.
func ExtractParameters(content string) []string {
	seen := make(map[string]struct{})
	for _, re := range paramPatterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			if len(match) > 1 && match[1] != "" {
				seen[match[1]] = struct{}{}
			}
		}
	}

	params := make([]string, 0, len(seen))
	for p := range seen {
		params = append(params, p)
	}
	sort.Strings(params)
	return params
}
