package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sharathchenna/web-scraper-sub000/crawl"
	"github.com/Sharathchenna/web-scraper-sub000/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProber_ScoresBelowThresholdAsTraditional(t *testing.T) {
	t.Parallel()

	p := &crawl.Prober{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body>plenty of server-rendered text</body></html>", nil
			},
		},
		Analyzer: &mock.PageAnalyzer{
			ScoreFn: func(html string) (int, []string) { return 30, []string{"sparse text"} },
		},
	}

	res := p.Probe(context.Background(), "https://s.test/")

	assert.False(t, res.IsHeavy)
	assert.Equal(t, 30, res.Score)
	assert.Equal(t, []string{"sparse text"}, res.Indicators)
}

func TestProber_ScoresAtThresholdAsHeavy(t *testing.T) {
	t.Parallel()

	p := &crawl.Prober{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
		},
		Analyzer: &mock.PageAnalyzer{
			ScoreFn: func(html string) (int, []string) {
				return crawl.DefaultHeavyThreshold, []string{"react root"}
			},
		},
	}

	res := p.Probe(context.Background(), "https://s.test/")

	assert.True(t, res.IsHeavy)
}

func TestProber_FetchFailureClassifiesAsHeavy(t *testing.T) {
	t.Parallel()

	p := &crawl.Prober{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection refused")
			},
		},
		Analyzer: &mock.PageAnalyzer{
			ScoreFn: func(html string) (int, []string) {
				t.Fatal("analyzer called after fetch failure")
				return 0, nil
			},
		},
	}

	res := p.Probe(context.Background(), "https://s.test/")

	assert.True(t, res.IsHeavy)
	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Indicators, 1)
	assert.Contains(t, res.Indicators[0], "probe fetch failed")
}

func TestProber_CustomThreshold(t *testing.T) {
	t.Parallel()

	p := &crawl.Prober{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
		},
		Analyzer: &mock.PageAnalyzer{
			ScoreFn: func(html string) (int, []string) { return 40, nil },
		},
		Threshold: 35,
	}

	res := p.Probe(context.Background(), "https://s.test/")

	assert.True(t, res.IsHeavy)
}
