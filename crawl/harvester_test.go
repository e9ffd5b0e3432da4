package crawl_test

import (
	"context"
	"errors"
	"testing"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/Sharathchenna/web-scraper-sub000/crawl"
	"github.com/Sharathchenna/web-scraper-sub000/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptPosts() *mock.URLClassifier {
	c := scraper.NewClassifier(scraper.ClassifierConfig{})
	return &mock.URLClassifier{
		LooksLikeArticleFn: c.LooksLikeArticle,
	}
}

func TestHarvester_CombinesStaticAndFeedURLs(t *testing.T) {
	t.Parallel()

	h := &crawl.Harvester{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		},
		Extractor: &mock.URLHarvester{
			HarvestHTMLFn: func(html, baseURL string) ([]string, error) {
				return []string{
					"https://s.test/posts/first-article",
					"https://s.test/about",
				}, nil
			},
		},
		Classifier: acceptPosts(),
		Feeds: &mock.FeedService{
			DiscoverFeedURLsFn: func(ctx context.Context, baseURL string) *scraper.HarvestResult {
				return &scraper.HarvestResult{
					URLs:         []string{"https://s.test/posts/from-the-feed"},
					Interactions: []string{"feed /rss.xml: 1 urls"},
				}
			},
		},
	}

	res := h.CheapMethods(context.Background(), "https://s.test/")

	assert.Equal(t, []string{
		"https://s.test/posts/first-article",
		"https://s.test/posts/from-the-feed",
	}, res.URLs)
	assert.Contains(t, res.Interactions, "static harvest: 1 urls")
	assert.Contains(t, res.Interactions, "feed /rss.xml: 1 urls")
}

func TestHarvester_FetchFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	h := &crawl.Harvester{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("503 service unavailable")
			},
		},
		Extractor: &mock.URLHarvester{
			HarvestHTMLFn: func(html, baseURL string) ([]string, error) {
				t.Fatal("extractor called after fetch failure")
				return nil, nil
			},
		},
		Classifier: acceptPosts(),
		Feeds: &mock.FeedService{
			DiscoverFeedURLsFn: func(ctx context.Context, baseURL string) *scraper.HarvestResult {
				return &scraper.HarvestResult{
					URLs: []string{"https://s.test/posts/still-found"},
				}
			},
		},
	}

	res := h.CheapMethods(context.Background(), "https://s.test/")

	assert.Equal(t, []string{"https://s.test/posts/still-found"}, res.URLs)
	found := false
	for _, entry := range res.Interactions {
		if entry == "static harvest failed: 503 service unavailable" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHarvester_FiltersFeedURLsThroughClassifier(t *testing.T) {
	t.Parallel()

	h := &crawl.Harvester{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
		},
		Extractor: &mock.URLHarvester{
			HarvestHTMLFn: func(html, baseURL string) ([]string, error) { return nil, nil },
		},
		Classifier: acceptPosts(),
		Feeds: &mock.FeedService{
			DiscoverFeedURLsFn: func(ctx context.Context, baseURL string) *scraper.HarvestResult {
				return &scraper.HarvestResult{
					URLs: []string{
						"https://s.test/posts/real-article",
						"https://other.example/posts/cross-site",
						"https://s.test/api/v1/items",
					},
				}
			},
		},
	}

	res := h.CheapMethods(context.Background(), "https://s.test/")

	assert.Equal(t, []string{"https://s.test/posts/real-article"}, res.URLs)
}

func TestHarvester_IdempotentAgainstUnchangedSite(t *testing.T) {
	t.Parallel()

	h := &crawl.Harvester{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
		},
		Extractor: &mock.URLHarvester{
			HarvestHTMLFn: func(html, baseURL string) ([]string, error) {
				return []string{"https://s.test/posts/a", "https://s.test/posts/b"}, nil
			},
		},
		Classifier: acceptPosts(),
		Feeds: &mock.FeedService{
			DiscoverFeedURLsFn: func(ctx context.Context, baseURL string) *scraper.HarvestResult {
				return &scraper.HarvestResult{URLs: []string{"https://s.test/posts/a"}}
			},
		},
	}

	first := h.CheapMethods(context.Background(), "https://s.test/")
	second := h.CheapMethods(context.Background(), "https://s.test/")

	require.Equal(t, first.URLs, second.URLs)
	assert.Equal(t, []string{"https://s.test/posts/a", "https://s.test/posts/b"}, first.URLs)
}
