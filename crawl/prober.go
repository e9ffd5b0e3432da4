package crawl

import (
	"context"
	"fmt"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// DefaultHeavyThreshold is the score at or above which a site is classified
// as JS-heavy.
const DefaultHeavyThreshold = 50

var _ scraper.Prober = (*Prober)(nil)

// Prober decides whether a site needs browser rendering by fetching the root
// page once over plain HTTP and scoring it for JS-heaviness signals.
//
// Probe never fails: any fetch error classifies the site as heavy with the
// maximum score, biasing toward the more thorough browser path.
type Prober struct {
	Fetcher  scraper.Fetcher
	Analyzer scraper.PageAnalyzer

	// Threshold overrides DefaultHeavyThreshold when positive.
	Threshold int
}

func (p *Prober) Probe(ctx context.Context, url string) scraper.ProbeResult {
	threshold := p.Threshold
	if threshold <= 0 {
		threshold = DefaultHeavyThreshold
	}

	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return scraper.ProbeResult{
			IsHeavy:    true,
			Score:      100,
			Indicators: []string{fmt.Sprintf("probe fetch failed: %v", err)},
		}
	}

	score, indicators := p.Analyzer.Score(html)
	return scraper.ProbeResult{
		IsHeavy:    score >= threshold,
		Score:      score,
		Indicators: indicators,
	}
}
