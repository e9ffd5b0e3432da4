package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Ensure Heuristics implements scraper.PageAnalyzer at compile time.
var _ scraper.PageAnalyzer = (*Heuristics)(nil)

// HeuristicsConfig holds the JS-heaviness scoring weights. The weights are
// empirically tuned starting points, not contractual values.
type HeuristicsConfig struct {
	SparseTextThreshold int // visible characters below which text is "sparse"
	SparseTextPoints    int
	MinAnchors          int // anchor count below which the page is "sparse"
	SparseAnchorPoints  int
	FrameworkRootPoints int // framework root attribute present
	FrameworkHintPoints int // framework script reference present
	NextMarkerPoints    int
	DynamicFetchPoints  int // per dynamic-fetch API referenced inline
	DynamicFetchCap     int
	SkeletonPoints      int
	PreloadPoints       int
}

// DefaultHeuristicsConfig returns the built-in scoring weights.
func DefaultHeuristicsConfig() HeuristicsConfig {
	return HeuristicsConfig{
		SparseTextThreshold: 500,
		SparseTextPoints:    15,
		MinAnchors:          5,
		SparseAnchorPoints:  15,
		FrameworkRootPoints: 25,
		FrameworkHintPoints: 20,
		NextMarkerPoints:    20,
		DynamicFetchPoints:  10,
		DynamicFetchCap:     20,
		SkeletonPoints:      10,
		PreloadPoints:       10,
	}
}

// Heuristics scores raw HTML for signals that meaningful content is rendered
// client-side: framework fingerprints, content sparsity, loading indicators,
// and SPA-style asset preloads.
type Heuristics struct {
	cfg HeuristicsConfig
}

// NewHeuristics creates a Heuristics analyzer. A zero-value config selects
// the defaults.
func NewHeuristics(cfg HeuristicsConfig) *Heuristics {
	if cfg == (HeuristicsConfig{}) {
		cfg = DefaultHeuristicsConfig()
	}
	return &Heuristics{cfg: cfg}
}

// Score analyzes html and returns a cumulative, order-independent score with
// a human-readable indicator per contributing signal.
func (h *Heuristics) Score(html string) (int, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, []string{fmt.Sprintf("html parse failed: %v", err)}
	}

	score := 0
	var indicators []string
	add := func(points int, indicator string) {
		score += points
		indicators = append(indicators, indicator)
	}

	if n := visibleTextLength(doc); n < h.cfg.SparseTextThreshold {
		add(h.cfg.SparseTextPoints, fmt.Sprintf("sparse visible text (%d chars)", n))
	}

	if n := doc.Find("a[href]").Length(); n < h.cfg.MinAnchors {
		add(h.cfg.SparseAnchorPoints, fmt.Sprintf("few anchors (%d)", n))
	}

	h.scoreFramework(doc, add, "react", "[data-reactroot], #react-root")
	h.scoreFramework(doc, add, "vue", "[data-v-app], [data-server-rendered]")
	h.scoreFramework(doc, add, "angular", "[ng-version], app-root")

	if doc.Find("#__next, script#__NEXT_DATA__").Length() > 0 {
		add(h.cfg.NextMarkerPoints, "next.js marker")
	}

	if pts, apis := h.scoreDynamicFetch(doc); pts > 0 {
		add(pts, fmt.Sprintf("inline dynamic fetch (%s)", strings.Join(apis, ", ")))
	}

	if doc.Find("[class*='skeleton'], [class*='loading'], [class*='placeholder'], [class*='spinner']").Length() > 0 {
		add(h.cfg.SkeletonPoints, "loading/skeleton placeholder classes")
	}

	if h.hasSPAPreload(doc) {
		add(h.cfg.PreloadPoints, "spa-style preload link")
	}

	return score, indicators
}

// scoreFramework awards root points when a framework root attribute is
// present, otherwise hint points when a script reference mentions the
// framework.
func (h *Heuristics) scoreFramework(doc *goquery.Document, add func(int, string), name, rootSelector string) {
	if doc.Find(rootSelector).Length() > 0 {
		add(h.cfg.FrameworkRootPoints, name+" root attribute")
		return
	}
	if doc.Find(fmt.Sprintf("script[src*='%s']", name)).Length() > 0 {
		add(h.cfg.FrameworkHintPoints, name+" script reference")
	}
}

// scoreDynamicFetch scans inline scripts for dynamic-fetch API references.
func (h *Heuristics) scoreDynamicFetch(doc *goquery.Document) (int, []string) {
	var inline strings.Builder
	doc.Find("script:not([src])").Each(func(_ int, sel *goquery.Selection) {
		inline.WriteString(sel.Text())
	})
	body := inline.String()

	points := 0
	var apis []string
	for _, api := range []string{"fetch(", "XMLHttpRequest", "axios"} {
		if strings.Contains(body, api) {
			points += h.cfg.DynamicFetchPoints
			apis = append(apis, strings.TrimSuffix(api, "("))
		}
	}
	if points > h.cfg.DynamicFetchCap {
		points = h.cfg.DynamicFetchCap
	}
	return points, apis
}

// hasSPAPreload reports whether a preload link points at a bundler's static
// asset path.
func (h *Heuristics) hasSPAPreload(doc *goquery.Document) bool {
	found := false
	doc.Find("link[rel='preload'], link[rel='modulepreload']").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		for _, prefix := range []string{"/static/", "/_next/", "/_nuxt/", "/assets/"} {
			if strings.Contains(href, prefix) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// visibleTextLength returns the length of the page's collapsed visible text.
func visibleTextLength(doc *goquery.Document) int {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	return len(strings.Join(strings.Fields(body.Text()), " "))
}
