package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/beevik/etree"
)

// maxSitemapDepth bounds recursive sitemap index resolution.
const maxSitemapDepth = 3

// Ensure FeedService implements scraper.FeedService at compile time.
var _ scraper.FeedService = (*FeedService)(nil)

// FeedService probes conventional feed and sitemap locations for a site and
// extracts content URLs from whatever responds as RSS, Atom, or an XML
// sitemap. robots.txt Sitemap: directives are consulted before the
// conventional paths.
//
// FeedService is best-effort by contract: a failing or malformed feed
// contributes zero URLs and a trace entry, never an error.
type FeedService struct {
	client    *http.Client
	cfg       scraper.FeedConfig
	userAgent string
	now       func() time.Time
}

// FeedOption configures a FeedService.
type FeedOption func(*FeedService)

// WithFeedConfig overrides the probed paths, per-feed cap, and freshness
// window.
func WithFeedConfig(cfg scraper.FeedConfig) FeedOption {
	return func(s *FeedService) {
		s.cfg = cfg.Normalize()
	}
}

// WithFeedUserAgent sets the User-Agent header for feed requests.
func WithFeedUserAgent(ua string) FeedOption {
	return func(s *FeedService) {
		s.userAgent = ua
	}
}

// WithClock overrides the freshness-window clock, for tests.
func WithClock(now func() time.Time) FeedOption {
	return func(s *FeedService) {
		s.now = now
	}
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client, opts ...FeedOption) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &FeedService{
		client:    client,
		cfg:       scraper.DefaultFeedConfig(),
		userAgent: DefaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverFeedURLs probes the configured well-known paths on the site root
// plus any robots.txt sitemap directives and returns the deduplicated URLs
// found, with one trace entry per probed source.
func (s *FeedService) DiscoverFeedURLs(ctx context.Context, baseURL string) *scraper.HarvestResult {
	result := &scraper.HarvestResult{}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		result.Interactions = append(result.Interactions, fmt.Sprintf("feed probe skipped: invalid base URL %q", baseURL))
		return result
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sources := s.robotsSitemaps(ctx, root)
	for _, p := range s.cfg.Paths {
		sources = append(sources, root.ResolveReference(&url.URL{Path: p}).String())
	}

	seenSources := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, src := range sources {
		if ctx.Err() != nil {
			result.Interactions = append(result.Interactions, "feed probe canceled")
			break
		}
		if seenSources[src] {
			continue
		}
		seenSources[src] = true

		urls, err := s.readSource(ctx, src, seenSources, 0)
		if err != nil {
			result.Interactions = append(result.Interactions, fmt.Sprintf("feed probe %s: %v", src, err))
			continue
		}

		added := 0
		for _, u := range urls {
			u = scraper.NormalizeURL(u)
			if !seenURLs[u] {
				seenURLs[u] = true
				result.URLs = append(result.URLs, u)
				added++
			}
		}
		result.Interactions = append(result.Interactions, fmt.Sprintf("feed probe %s: %d urls", src, added))
	}

	return result
}

// robotsSitemaps extracts Sitemap: directives from the site's robots.txt.
func (s *FeedService) robotsSitemaps(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// readSource fetches one feed or sitemap and parses it by root element.
// Sitemap indexes recurse up to maxSitemapDepth.
func (s *FeedService) readSource(ctx context.Context, src string, seenSources map[string]bool, depth int) ([]string, error) {
	body, err := s.fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}

	switch root.Tag {
	case "rss":
		return s.parseRSS(root), nil
	case "feed":
		return s.parseAtom(root), nil
	case "urlset":
		return s.parseURLSet(root), nil
	case "sitemapindex":
		if depth >= maxSitemapDepth {
			return nil, fmt.Errorf("sitemap index nested too deep")
		}
		return s.readSitemapIndex(ctx, root, seenSources, depth)
	default:
		return nil, fmt.Errorf("unrecognized root element <%s>", root.Tag)
	}
}

// parseRSS extracts item links from an RSS channel, applying the freshness
// window against pubDate and the per-feed item cap.
func (s *FeedService) parseRSS(root *etree.Element) []string {
	var urls []string
	for _, channel := range root.SelectElements("channel") {
		for _, item := range channel.SelectElements("item") {
			if len(urls) >= s.cfg.MaxItemsPerFeed {
				return urls
			}
			link := item.SelectElement("link")
			if link == nil {
				continue
			}
			u := strings.TrimSpace(link.Text())
			if u == "" {
				continue
			}
			if pub := item.SelectElement("pubDate"); pub != nil && s.stale(pub.Text()) {
				continue
			}
			urls = append(urls, u)
		}
	}
	return urls
}

// parseAtom extracts entry links from an Atom feed. Atom carries the URL in
// the link element's href attribute, distinct from element text.
func (s *FeedService) parseAtom(root *etree.Element) []string {
	var urls []string
	for _, entry := range root.SelectElements("entry") {
		if len(urls) >= s.cfg.MaxItemsPerFeed {
			return urls
		}
		var href string
		for _, link := range entry.SelectElements("link") {
			rel := link.SelectAttrValue("rel", "alternate")
			if h := link.SelectAttrValue("href", ""); h != "" && (rel == "alternate" || href == "") {
				href = h
			}
		}
		if href == "" {
			continue
		}
		if updated := entry.SelectElement("updated"); updated != nil && s.stale(updated.Text()) {
			continue
		}
		urls = append(urls, strings.TrimSpace(href))
	}
	return urls
}

// parseURLSet extracts locations from a <urlset>, applying the freshness
// window against lastmod.
func (s *FeedService) parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		if len(urls) >= s.cfg.MaxItemsPerFeed {
			return urls
		}
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" {
			continue
		}
		if lastmod := urlEl.SelectElement("lastmod"); lastmod != nil && s.stale(lastmod.Text()) {
			continue
		}
		urls = append(urls, u)
	}
	return urls
}

// readSitemapIndex resolves each child sitemap of a <sitemapindex>.
// A failing child is skipped; the remaining children are still read.
func (s *FeedService) readSitemapIndex(ctx context.Context, root *etree.Element, seenSources map[string]bool, depth int) ([]string, error) {
	var urls []string
	for _, sm := range root.SelectElements("sitemap") {
		loc := sm.SelectElement("loc")
		if loc == nil {
			continue
		}
		child := strings.TrimSpace(loc.Text())
		if child == "" || seenSources[child] {
			continue
		}
		seenSources[child] = true

		childURLs, err := s.readSource(ctx, child, seenSources, depth+1)
		if err != nil {
			continue
		}
		urls = append(urls, childURLs...)
	}
	return urls, nil
}

// feedTimeLayouts covers the date formats seen in RSS, Atom, and sitemaps.
var feedTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02",
}

// stale reports whether a feed timestamp falls outside the freshness
// window. Unparseable timestamps are kept: a bad date should not hide an
// otherwise valid entry.
func (s *FeedService) stale(raw string) bool {
	if s.cfg.FreshnessWindow <= 0 {
		return false
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return s.now().Sub(t) > s.cfg.FreshnessWindow
		}
	}
	return false
}

// fetch retrieves a URL and returns the response body.
func (s *FeedService) fetch(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}
