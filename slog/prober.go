package slog

import (
	"context"
	"log/slog"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Ensure LoggingProber implements scraper.Prober.
var _ scraper.Prober = (*LoggingProber)(nil)

// LoggingProber wraps a Prober with debug logging.
type LoggingProber struct {
	next   scraper.Prober
	logger *slog.Logger
}

// NewLoggingProber creates a new LoggingProber.
func NewLoggingProber(next scraper.Prober, logger *slog.Logger) *LoggingProber {
	return &LoggingProber{next: next, logger: logger}
}

// Probe delegates to the wrapped prober and logs the classification.
func (p *LoggingProber) Probe(ctx context.Context, url string) scraper.ProbeResult {
	begin := time.Now()
	res := p.next.Probe(ctx, url)
	p.logger.Info("js-heaviness probe",
		"url", url,
		"heavy", res.IsHeavy,
		"score", res.Score,
		"indicators", len(res.Indicators),
		"duration", time.Since(begin),
	)
	return res
}
