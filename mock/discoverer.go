package mock

import (
	"context"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of scraper.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, rootURL string, desiredLinkCount int) *scraper.DiscoveryResult
}

func (d *Discoverer) Discover(ctx context.Context, rootURL string, desiredLinkCount int) *scraper.DiscoveryResult {
	return d.DiscoverFn(ctx, rootURL, desiredLinkCount)
}
