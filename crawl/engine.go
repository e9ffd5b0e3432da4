// Package crawl implements the discovery orchestrator: probing, the cheap
// static path, escalation to browser sessions, and retry with backoff.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"golang.org/x/sync/semaphore"
)

// Orchestrator defaults.
const (
	DefaultDesiredLinkCount = 10
	DefaultMinURLs          = 1
	DefaultMaxOpenSessions  = 4
)

var _ scraper.Discoverer = (*Engine)(nil)

// Engine is the top-level discoverer. One Discover call runs a probe,
// chooses the cheap or browser path, escalates when the cheap yield is
// insufficient, and retries the whole attempt with exponential backoff.
//
// Discover never returns an error; failure is reported through the result's
// Success flag and Interactions trace. Independent Discover calls may run
// concurrently; open browser sessions across all of them are bounded by
// MaxOpenSessions.
type Engine struct {
	Prober   scraper.Prober
	Cheap    scraper.CheapHarvester
	Sessions scraper.SessionFactory
	Limiter  scraper.DomainLimiter

	// MaxAttempts bounds whole-attempt retries. Default len(RetryDelays)+1.
	MaxAttempts int

	// RetryDelays is the backoff schedule between attempts. Default 1s, 2s, 4s.
	RetryDelays []time.Duration

	// MinURLs is the yield below which an attempt counts as failed and is
	// retried. Default 1.
	MinURLs int

	// MaxOpenSessions bounds simultaneously open browser sessions across
	// concurrent Discover calls. Default 4.
	MaxOpenSessions int

	semOnce sync.Once
	sem     *semaphore.Weighted
}

func (e *Engine) Discover(ctx context.Context, rootURL string, desiredLinkCount int) *scraper.DiscoveryResult {
	start := time.Now()
	res := &scraper.DiscoveryResult{}
	defer func() { res.Duration = time.Since(start) }()

	if desiredLinkCount <= 0 {
		desiredLinkCount = DefaultDesiredLinkCount
	}
	minURLs := e.MinURLs
	if minURLs <= 0 {
		minURLs = DefaultMinURLs
	}
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	maxAttempts := e.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = len(delays) + 1
	}

	parsed, err := url.Parse(rootURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		res.Interactions = append(res.Interactions, fmt.Sprintf("invalid root url %q", rootURL))
		return res
	}
	rootURL = scraper.NormalizeURL(rootURL)

	seen := make(map[string]struct{})
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := delays[min(attempt-2, len(delays)-1)]
			res.Interactions = append(res.Interactions, fmt.Sprintf("retrying after %s (attempt %d of %d)", delay, attempt, maxAttempts))
			if !sleepCtx(ctx, delay) {
				res.Interactions = append(res.Interactions, "discovery canceled during backoff")
				break
			}
		}

		err := e.attempt(ctx, parsed.Host, rootURL, desiredLinkCount, seen, res)
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("attempt %d failed: %v", attempt, err))
			continue
		}
		if len(seen) >= minURLs {
			break
		}
	}

	res.URLs = make([]string, 0, len(seen))
	for u := range seen {
		res.URLs = append(res.URLs, u)
	}
	sort.Strings(res.URLs)
	res.Success = len(res.URLs) >= minURLs
	return res
}

// attempt runs one full probe-and-harvest pass. Only browser launch and
// navigation failures surface as errors; everything else folds into the
// trace.
func (e *Engine) attempt(ctx context.Context, host, rootURL string, want int, seen map[string]struct{}, res *scraper.DiscoveryResult) error {
	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx, host); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	probe := e.Prober.Probe(ctx, rootURL)
	res.JSHeavy = probe.IsHeavy
	res.Score = probe.Score

	// Heavy sites skip the cheap path entirely: a plain fetch is assumed
	// unproductive when the page renders client-side.
	if !probe.IsHeavy {
		res.Interactions = append(res.Interactions, fmt.Sprintf("probe score %d, trying cheap methods", probe.Score))

		cheap := e.Cheap.CheapMethods(ctx, rootURL)
		res.Interactions = append(res.Interactions, cheap.Interactions...)
		mergeURLs(seen, cheap.URLs)

		if len(seen) >= want {
			return nil
		}
		res.Interactions = append(res.Interactions, fmt.Sprintf("cheap yield %d below target %d, escalating to browser", len(seen), want))
	}

	return e.browserPath(ctx, rootURL, seen, res)
}

// browserPath opens one session and runs the interaction strategies in
// order. The session is closed on every exit path.
func (e *Engine) browserPath(ctx context.Context, rootURL string, seen map[string]struct{}, res *scraper.DiscoveryResult) error {
	slots := e.sessionSlots()
	if err := slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for session slot: %w", err)
	}
	defer slots.Release(1)

	session, err := e.Sessions.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("opening browser session: %w", err)
	}
	defer session.Close()

	res.Interactions = append(res.Interactions, fmt.Sprintf("browser session %s started for %s", session.ID(), rootURL))

	if err := session.Navigate(ctx, rootURL); err != nil {
		res.Interactions = append(res.Interactions, fmt.Sprintf("browser session %s navigation failed: %v", session.ID(), err))
		return err
	}

	inter := session.ClickInteractiveElements(ctx, rootURL)
	res.Interactions = append(res.Interactions, inter.Interactions...)
	mergeURLs(seen, inter.URLs)

	scroll := session.ScrollForMore(ctx, rootURL)
	res.Interactions = append(res.Interactions, scroll.Interactions...)
	mergeURLs(seen, scroll.URLs)

	frames := session.HarvestFrames(ctx, rootURL)
	res.Interactions = append(res.Interactions, frames.Interactions...)
	mergeURLs(seen, frames.URLs)

	auth := session.Authenticate(ctx)
	res.Interactions = append(res.Interactions, auth.Interactions...)

	mergeURLs(seen, session.HarvestPage(ctx, rootURL))
	mergeURLs(seen, session.CapturedURLs())
	return nil
}

func (e *Engine) sessionSlots() *semaphore.Weighted {
	e.semOnce.Do(func() {
		n := e.MaxOpenSessions
		if n <= 0 {
			n = DefaultMaxOpenSessions
		}
		e.sem = semaphore.NewWeighted(int64(n))
	})
	return e.sem
}

func mergeURLs(seen map[string]struct{}, urls []string) {
	for _, u := range urls {
		seen[u] = struct{}{}
	}
}
