package mock

import (
	"context"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of scraper.FeedService.
type FeedService struct {
	DiscoverFeedURLsFn func(ctx context.Context, baseURL string) *scraper.HarvestResult
}

func (s *FeedService) DiscoverFeedURLs(ctx context.Context, baseURL string) *scraper.HarvestResult {
	return s.DiscoverFeedURLsFn(ctx, baseURL)
}

var _ scraper.CheapHarvester = (*CheapHarvester)(nil)

// CheapHarvester is a mock implementation of scraper.CheapHarvester.
type CheapHarvester struct {
	CheapMethodsFn func(ctx context.Context, rootURL string) *scraper.HarvestResult
}

func (h *CheapHarvester) CheapMethods(ctx context.Context, rootURL string) *scraper.HarvestResult {
	return h.CheapMethodsFn(ctx, rootURL)
}
