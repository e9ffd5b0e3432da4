package crawl

import (
	"context"
	"fmt"
	"sort"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.CheapHarvester = (*Harvester)(nil)

// Harvester runs the non-browser discovery path: a direct fetch of the root
// page followed by the feed and sitemap probe. Both sub-steps are
// best-effort; a failing step contributes a trace entry and zero URLs, never
// an error.
type Harvester struct {
	Fetcher    scraper.Fetcher
	Extractor  scraper.URLHarvester
	Classifier scraper.URLClassifier
	Feeds      scraper.FeedService
}

func (h *Harvester) CheapMethods(ctx context.Context, rootURL string) *scraper.HarvestResult {
	res := &scraper.HarvestResult{}
	seen := make(map[string]struct{})

	if err := h.harvestStatic(ctx, rootURL, seen, res); err != nil {
		res.Interactions = append(res.Interactions, fmt.Sprintf("static harvest failed: %v", err))
	}

	if h.Feeds != nil {
		feeds := h.Feeds.DiscoverFeedURLs(ctx, rootURL)
		res.Interactions = append(res.Interactions, feeds.Interactions...)
		for _, u := range feeds.URLs {
			u = scraper.NormalizeURL(u)
			if !h.Classifier.LooksLikeArticle(u, rootURL) {
				continue
			}
			seen[u] = struct{}{}
		}
	}

	res.URLs = make([]string, 0, len(seen))
	for u := range seen {
		res.URLs = append(res.URLs, u)
	}
	sort.Strings(res.URLs)
	return res
}

func (h *Harvester) harvestStatic(ctx context.Context, rootURL string, seen map[string]struct{}, res *scraper.HarvestResult) error {
	html, err := h.Fetcher.Fetch(ctx, rootURL)
	if err != nil {
		return err
	}

	candidates, err := h.Extractor.HarvestHTML(html, rootURL)
	if err != nil {
		return err
	}

	added := 0
	for _, u := range candidates {
		u = scraper.NormalizeURL(u)
		if !h.Classifier.LooksLikeArticle(u, rootURL) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		added++
	}
	res.Interactions = append(res.Interactions, fmt.Sprintf("static harvest: %d urls", added))
	return nil
}
