package crawl_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/Sharathchenna/web-scraper-sub000/crawl"
	"github.com/Sharathchenna/web-scraper-sub000/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticProber(score int) *mock.Prober {
	return &mock.Prober{
		ProbeFn: func(ctx context.Context, url string) scraper.ProbeResult {
			return scraper.ProbeResult{IsHeavy: score >= crawl.DefaultHeavyThreshold, Score: score}
		},
	}
}

func cheapWith(urls ...string) *mock.CheapHarvester {
	return &mock.CheapHarvester{
		CheapMethodsFn: func(ctx context.Context, rootURL string) *scraper.HarvestResult {
			return &scraper.HarvestResult{
				URLs:         urls,
				Interactions: []string{"static harvest: run"},
			}
		},
	}
}

// quietSession returns a browser session mock that yields the given URLs
// from its final page harvest and records whether Close was called.
func quietSession(id string, urls []string, closed *bool) *mock.BrowserSession {
	return &mock.BrowserSession{
		IDFn:       func() string { return id },
		NavigateFn: func(ctx context.Context, url string) error { return nil },
		ClickInteractiveElementsFn: func(ctx context.Context, baseURL string) *scraper.InteractionResult {
			return &scraper.InteractionResult{Success: true}
		},
		ScrollForMoreFn: func(ctx context.Context, baseURL string) *scraper.ScrollResult {
			return &scraper.ScrollResult{}
		},
		HarvestFramesFn: func(ctx context.Context, baseURL string) *scraper.FrameResult {
			return &scraper.FrameResult{}
		},
		AuthenticateFn: func(ctx context.Context) *scraper.AuthResult {
			return &scraper.AuthResult{Interactions: []string{"no credentials configured, skipping login"}}
		},
		HarvestPageFn: func(ctx context.Context, baseURL string) []string { return urls },
		CapturedURLsFn: func() []string { return nil },
		CloseFn: func() error {
			*closed = true
			return nil
		},
	}
}

func TestEngine_CheapPathNeverOpensBrowser(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://s.test/a1", "https://s.test/a2", "https://s.test/a3",
		"https://s.test/a4", "https://s.test/a5", "https://s.test/a6",
		"https://s.test/a7", "https://s.test/a8", "https://s.test/a9",
		"https://s.test/a10", "https://s.test/a11", "https://s.test/a12",
	}

	e := &crawl.Engine{
		Prober: staticProber(20),
		Cheap:  cheapWith(urls...),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				t.Fatal("browser session opened on cheap path")
				return nil, nil
			},
		},
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 10)

	require.True(t, res.Success)
	assert.False(t, res.JSHeavy)
	assert.Equal(t, 20, res.Score)
	assert.Len(t, res.URLs, 12)
	for _, entry := range res.Interactions {
		assert.NotContains(t, entry, "browser")
	}
	assert.Positive(t, res.Duration)
}

func TestEngine_HeavySiteSkipsCheapMethods(t *testing.T) {
	t.Parallel()

	cheapCalled := false
	closed := false
	session := quietSession("s1", []string{"https://s.test/p1", "https://s.test/p2"}, &closed)

	e := &crawl.Engine{
		Prober: staticProber(80),
		Cheap: &mock.CheapHarvester{
			CheapMethodsFn: func(ctx context.Context, rootURL string) *scraper.HarvestResult {
				cheapCalled = true
				return &scraper.HarvestResult{}
			},
		},
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				return session, nil
			},
		},
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 2)

	require.True(t, res.Success)
	assert.True(t, res.JSHeavy)
	assert.False(t, cheapCalled)
	assert.True(t, closed)
	require.NotEmpty(t, res.Interactions)
	assert.Equal(t, "browser session s1 started for https://s.test/", res.Interactions[0])
}

func TestEngine_EscalatesWhenCheapYieldInsufficient(t *testing.T) {
	t.Parallel()

	closed := false
	session := quietSession("s1", []string{
		"https://s.test/b1", "https://s.test/b2", "https://s.test/b3",
	}, &closed)

	e := &crawl.Engine{
		Prober: staticProber(20),
		Cheap:  cheapWith("https://s.test/a1", "https://s.test/a2"),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				return session, nil
			},
		},
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 5)

	require.True(t, res.Success)
	assert.Len(t, res.URLs, 5)
	assert.True(t, closed)
	assert.Contains(t, res.Interactions, "cheap yield 2 below target 5, escalating to browser")
}

func TestEngine_RetriesWithBackoffOnBrowserFailure(t *testing.T) {
	t.Parallel()

	closed := false
	calls := 0
	e := &crawl.Engine{
		Prober: staticProber(80),
		Cheap:  cheapWith(),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				calls++
				if calls == 1 {
					return nil, errors.New("browser launch failed")
				}
				return quietSession("s2", []string{"https://s.test/p1"}, &closed), nil
			},
		},
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 1)

	require.True(t, res.Success)
	assert.Equal(t, 2, calls)
	assert.Contains(t, res.Interactions, "attempt 1 failed: opening browser session: browser launch failed")
	assert.Contains(t, res.Interactions, "retrying after 1ms (attempt 2 of 2)")
}

func TestEngine_ExhaustedAttemptsReportFailureNotError(t *testing.T) {
	t.Parallel()

	e := &crawl.Engine{
		Prober: staticProber(80),
		Cheap:  cheapWith(),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				return nil, errors.New("browser launch failed")
			},
		},
		RetryDelays: []time.Duration{time.Millisecond, time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 10)

	assert.False(t, res.Success)
	assert.Empty(t, res.URLs)
	failures := 0
	for _, entry := range res.Interactions {
		if strings.Contains(entry, "failed") {
			failures++
		}
	}
	assert.Equal(t, 3, failures)
}

func TestEngine_NavigationFailureClosesSession(t *testing.T) {
	t.Parallel()

	closed := false
	session := quietSession("s1", nil, &closed)
	session.NavigateFn = func(ctx context.Context, url string) error {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}

	e := &crawl.Engine{
		Prober: staticProber(80),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				return session, nil
			},
		},
		MaxAttempts: 1,
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://nosuch.test/", 5)

	assert.False(t, res.Success)
	assert.True(t, closed)
}

func TestEngine_InvalidRootURL(t *testing.T) {
	t.Parallel()

	e := &crawl.Engine{
		Prober: staticProber(0),
		Cheap:  cheapWith(),
	}

	res := e.Discover(context.Background(), "not a url", 5)

	assert.False(t, res.Success)
	assert.Empty(t, res.URLs)
	require.Len(t, res.Interactions, 1)
	assert.Contains(t, res.Interactions[0], "invalid root url")
}

func TestEngine_MergesBrowserStrategyResults(t *testing.T) {
	t.Parallel()

	closed := false
	session := quietSession("s1", []string{"https://s.test/final"}, &closed)
	session.ClickInteractiveElementsFn = func(ctx context.Context, baseURL string) *scraper.InteractionResult {
		return &scraper.InteractionResult{
			URLs:         []string{"https://s.test/clicked"},
			Interactions: []string{`clicked load-more "More" (button.load-more): 1 new urls`},
			Success:      true,
		}
	}
	session.ScrollForMoreFn = func(ctx context.Context, baseURL string) *scraper.ScrollResult {
		return &scraper.ScrollResult{
			URLs:           []string{"https://s.test/scrolled", "https://s.test/clicked"},
			Interactions:   []string{"scroll attempt 1: height stable at 900, stopping"},
			ScrollAttempts: 1,
		}
	}
	session.HarvestFramesFn = func(ctx context.Context, baseURL string) *scraper.FrameResult {
		return &scraper.FrameResult{URLs: []string{"https://s.test/framed"}}
	}
	session.CapturedURLsFn = func() []string {
		return []string{"https://s.test/captured"}
	}

	e := &crawl.Engine{
		Prober: staticProber(80),
		Sessions: &mock.SessionFactory{
			NewSessionFn: func(ctx context.Context) (scraper.BrowserSession, error) {
				return session, nil
			},
		},
		RetryDelays: []time.Duration{time.Millisecond},
	}

	res := e.Discover(context.Background(), "https://s.test/", 5)

	require.True(t, res.Success)
	assert.Equal(t, []string{
		"https://s.test/captured",
		"https://s.test/clicked",
		"https://s.test/final",
		"https://s.test/framed",
		"https://s.test/scrolled",
	}, res.URLs)
}
