package mock

import (
	"context"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scraper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
