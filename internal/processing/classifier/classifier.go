// Package classifier assigns a document type to scraped documentation pages.
package classifier

import (
	"strings"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

// rule pairs a predicate over the lowercased (url, content) pair with the
// label it assigns.
type rule struct {
	label domain.DocumentType
	match func(url, content string) bool
}

// rules is the ordered rule table. Evaluation order is a contract: the first
// matching rule wins, so "example" outranks "tutorial" for a page mentioning
// both. Changing the order changes classification results.
var rules = []rule{
	{domain.DocTypeExample, func(url, content string) bool {
		return strings.Contains(content, "example") || strings.Contains(url, "example")
	}},
	{domain.DocTypeParameter, func(url, content string) bool {
		return strings.Contains(content, "parameter") || strings.Contains(url, "param")
	}},
	{domain.DocTypeResponseSchema, func(_, content string) bool {
		return strings.Contains(content, "response") || strings.Contains(content, "schema")
	}},
	{domain.DocTypeErrorCode, func(_, content string) bool {
		return strings.Contains(content, "error") || strings.Contains(content, "status")
	}},
	{domain.DocTypeTutorial, func(_, content string) bool {
		return strings.Contains(content, "tutorial") || strings.Contains(content, "guide")
	}},
	{domain.DocTypeAPIEndpoint, func(url, content string) bool {
		return strings.Contains(url, "/#") || strings.Contains(content, "endpoint")
	}},
}

// Classify assigns a document type from content and URL heuristics.
// It is a total, deterministic function: any input yields exactly one type,
// falling back to overview when no rule matches.
func Classify(url, content string) domain.DocumentType {
	url = strings.ToLower(url)
	content = strings.ToLower(content)

	for _, r := range rules {
		if r.match(url, content) {
			return r.label
		}
	}
	return domain.DocTypeOverview
}
