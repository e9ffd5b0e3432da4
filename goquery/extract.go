// Package goquery provides HTML analysis on top of PuerkitoBio/goquery:
// candidate URL extraction from raw or rendered pages, and heuristic
// JS-heaviness scoring.
package goquery

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// maxJSONLDDepth bounds the recursive JSON-LD traversal. Adversarial or
// cyclic structured data must not be able to exhaust the stack.
const maxJSONLDDepth = 10

// jsonldURLKeys are the JSON-LD fields treated as candidate URLs.
var jsonldURLKeys = []string{"url", "@id", "mainEntityOfPage"}

// Ensure Extractor implements scraper.URLHarvester at compile time.
var _ scraper.URLHarvester = (*Extractor)(nil)

// Extractor harvests candidate URLs from HTML: anchor hrefs, canonical
// links, og:url meta tags, and application/ld+json blocks. Candidates are
// resolved to absolute form and deduplicated; classification is left to the
// caller.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// HarvestHTML parses html and returns absolute candidate URLs in document
// order, deduplicated, scoped to the same host as baseURL.
func (e *Extractor) HarvestHTML(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var candidates []string

	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || isNonHTTPLink(raw) {
			return
		}
		resolved := resolveURL(base, raw)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}
		resolved = scraper.NormalizeURL(resolved)
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		candidates = append(candidates, resolved)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			add(href)
		}
	})

	doc.Find("link[rel='canonical']").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			add(href)
		}
	})

	doc.Find("meta[property='og:url']").Each(func(_ int, sel *goquery.Selection) {
		if content, ok := sel.Attr("content"); ok {
			add(content)
		}
	})

	doc.Find("script[type='application/ld+json']").Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			// Malformed structured data contributes zero URLs.
			return
		}
		collectJSONLDURLs(payload, 0, add)
	})

	return candidates, nil
}

// collectJSONLDURLs walks a decoded JSON-LD value and emits every string
// found under a recognized URL key. Recursion is depth-limited.
func collectJSONLDURLs(v any, depth int, emit func(string)) {
	if depth > maxJSONLDDepth {
		return
	}
	switch t := v.(type) {
	case map[string]any:
		for _, key := range jsonldURLKeys {
			if raw, ok := t[key].(string); ok {
				emit(raw)
			}
		}
		for _, child := range t {
			collectJSONLDURLs(child, depth+1, emit)
		}
	case []any:
		for _, child := range t {
			collectJSONLDURLs(child, depth+1, emit)
		}
	}
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), base.Hostname())
}

// isNonHTTPLink reports whether href uses a scheme that can never be
// fetched (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
