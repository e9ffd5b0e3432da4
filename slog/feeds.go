package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Ensure LoggingFeedService implements scraper.FeedService.
var _ scraper.FeedService = (*LoggingFeedService)(nil)

// LoggingFeedService wraps a FeedService with debug logging.
type LoggingFeedService struct {
	next   scraper.FeedService
	logger *slog.Logger
}

// NewLoggingFeedService creates a new LoggingFeedService.
func NewLoggingFeedService(next scraper.FeedService, logger *slog.Logger) *LoggingFeedService {
	return &LoggingFeedService{next: next, logger: logger}
}

// DiscoverFeedURLs delegates to the wrapped service and logs the operation.
func (s *LoggingFeedService) DiscoverFeedURLs(ctx context.Context, baseURL string) *scraper.HarvestResult {
	begin := time.Now()
	res := s.next.DiscoverFeedURLs(ctx, baseURL)
	s.logger.Info("feed discovery",
		"url", baseURL,
		"count", len(res.URLs),
		"duration", time.Since(begin),
	)
	return res
}
