package scraper

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Ensure Classifier implements URLClassifier at compile time.
var _ URLClassifier = (*Classifier)(nil)

// ClassifierConfig holds the tunable heuristics for the URL classifier.
// The keyword lists are empirically tuned starting points, not contractual
// values; override individual fields to adapt to a site family.
type ClassifierConfig struct {
	// AssetExtensions are rejected outright (images, styles, scripts, fonts).
	AssetExtensions []string

	// SkipPrefixes are path prefixes that never lead to content.
	SkipPrefixes []string

	// NavigationPages are single-segment paths treated as site chrome.
	NavigationPages []string

	// ContentKeywords are path segments that strongly indicate content.
	ContentKeywords []string

	// TopicalKeywords support the deep-path fallback acceptance rule.
	TopicalKeywords []string

	// MinFallbackDepth is the path depth required for the fallback rule.
	// Default 3.
	MinFallbackDepth int
}

// DefaultClassifierConfig returns the built-in heuristics.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		AssetExtensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico",
			".css", ".js", ".mjs", ".map",
			".woff", ".woff2", ".ttf", ".eot", ".otf",
			".mp4", ".webm", ".mp3", ".avi", ".zip", ".gz",
		},
		SkipPrefixes: []string{
			"/api/", "/static/", "/assets/", "/cdn-cgi/",
			"/_next/", "/_nuxt/", "/wp-json/", "/wp-admin/", "/graphql",
		},
		NavigationPages: []string{
			"about", "contact", "privacy", "terms", "login", "signup",
			"register", "search", "home", "faq", "help", "careers",
			"subscribe", "advertise", "sitemap",
		},
		ContentKeywords: []string{
			"post", "posts", "article", "articles", "blog", "story",
			"stories", "news", "entry",
		},
		TopicalKeywords: []string{
			"guide", "review", "recipe", "tutorial", "update", "opinion",
			"feature", "interview", "analysis", "report",
		},
		MinFallbackDepth: 3,
	}
}

// dateSegment matches /YYYY/MM/ or /YYYY/MM/DD/ style path fragments and
// ISO-date path segments.
var dateSegment = regexp.MustCompile(`/(19|20)\d{2}/\d{1,2}(/\d{1,2})?(/|$)|/(19|20)\d{2}-\d{2}-\d{2}`)

// Classifier is the default pure URLClassifier. It is deterministic given
// the same two strings and safe for concurrent use.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a Classifier. A zero-value config selects the
// defaults.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	d := DefaultClassifierConfig()
	if cfg.AssetExtensions == nil {
		cfg.AssetExtensions = d.AssetExtensions
	}
	if cfg.SkipPrefixes == nil {
		cfg.SkipPrefixes = d.SkipPrefixes
	}
	if cfg.NavigationPages == nil {
		cfg.NavigationPages = d.NavigationPages
	}
	if cfg.ContentKeywords == nil {
		cfg.ContentKeywords = d.ContentKeywords
	}
	if cfg.TopicalKeywords == nil {
		cfg.TopicalKeywords = d.TopicalKeywords
	}
	if cfg.MinFallbackDepth <= 0 {
		cfg.MinFallbackDepth = d.MinFallbackDepth
	}
	return &Classifier{cfg: cfg}
}

// LooksLikeArticle reports whether candidateURL looks like addressable
// content on the same site as baseURL.
func (c *Classifier) LooksLikeArticle(candidateURL, baseURL string) bool {
	cand, err := url.Parse(candidateURL)
	if err != nil {
		return false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}

	if cand.Scheme != "http" && cand.Scheme != "https" {
		return false
	}

	// Same-site scope: a different hostname is never content.
	if !strings.EqualFold(cand.Hostname(), base.Hostname()) {
		return false
	}

	p := strings.ToLower(cand.EscapedPath())
	if p == "" || p == "/" {
		return false
	}

	if ext := strings.ToLower(path.Ext(p)); ext != "" {
		for _, asset := range c.cfg.AssetExtensions {
			if ext == asset {
				return false
			}
		}
	}

	for _, prefix := range c.cfg.SkipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}

	segments := splitPath(p)
	if len(segments) == 0 {
		return false
	}
	if len(segments) == 1 {
		for _, nav := range c.cfg.NavigationPages {
			if segments[0] == nav {
				return false
			}
		}
	}

	// Date segments are the strongest content signal.
	if dateSegment.MatchString(p) {
		return true
	}

	for _, seg := range segments {
		for _, kw := range c.cfg.ContentKeywords {
			if seg == kw {
				return true
			}
		}
	}

	// Hyphenated slug in the final segment.
	if last := segments[len(segments)-1]; strings.Contains(last, "-") {
		return true
	}

	// Softer fallback: deep path combined with a topical keyword.
	if len(segments) >= c.cfg.MinFallbackDepth {
		for _, kw := range c.cfg.TopicalKeywords {
			if strings.Contains(p, kw) {
				return true
			}
		}
	}

	return false
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(p string) []string {
	var segments []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// NormalizeURL strips the fragment from a URL. URLs differing only by
// fragment address the same content and are considered duplicates.
func NormalizeURL(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
