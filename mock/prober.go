package mock

import (
	"context"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.Prober = (*Prober)(nil)

// Prober is a mock implementation of scraper.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) scraper.ProbeResult
}

func (p *Prober) Probe(ctx context.Context, url string) scraper.ProbeResult {
	return p.ProbeFn(ctx, url)
}

var _ scraper.PageAnalyzer = (*PageAnalyzer)(nil)

// PageAnalyzer is a mock implementation of scraper.PageAnalyzer.
type PageAnalyzer struct {
	ScoreFn func(html string) (int, []string)
}

func (a *PageAnalyzer) Score(html string) (int, []string) {
	return a.ScoreFn(html)
}
