// Package slog provides logging decorators for the discovery service
// interfaces, built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Ensure LoggingDiscoverer implements scraper.Discoverer.
var _ scraper.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with operational logging.
type LoggingDiscoverer struct {
	next   scraper.Discoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next scraper.Discoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the outcome.
func (d *LoggingDiscoverer) Discover(ctx context.Context, rootURL string, desiredLinkCount int) *scraper.DiscoveryResult {
	begin := time.Now()
	res := d.next.Discover(ctx, rootURL, desiredLinkCount)
	d.logger.Info("discovery",
		"url", rootURL,
		"want", desiredLinkCount,
		"count", len(res.URLs),
		"success", res.Success,
		"jsHeavy", res.JSHeavy,
		"score", res.Score,
		"steps", len(res.Interactions),
		"duration", time.Since(begin),
	)
	return res
}
