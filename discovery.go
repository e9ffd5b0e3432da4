package scraper

import (
	"context"
	"time"
)

// DiscoveryResult is the outcome of one Discover call. URLs is a duplicate-free
// set of absolute, same-site URLs that passed the classifier at insertion time.
// Interactions is an append-only, human-readable trace of every action taken;
// it is part of the contract (operators and tests inspect it), not incidental
// logging.
type DiscoveryResult struct {
	URLs         []string
	Interactions []string
	Success      bool
	Duration     time.Duration
	JSHeavy      bool
	Score        int
}

// ProbeResult classifies a site as JS-heavy or traditional. It is produced
// once per discovery attempt and immutable after creation.
type ProbeResult struct {
	IsHeavy    bool
	Score      int
	Indicators []string
}

// InteractionResult is produced by each interaction phase (load-more,
// pagination, read-more, expandable) and merged by the top-level call.
type InteractionResult struct {
	URLs               []string
	Interactions       []string
	ElementsInteracted int
	Success            bool
}

// ScrollResult is produced by the infinite-scroll controller.
type ScrollResult struct {
	URLs           []string
	Interactions   []string
	ScrollAttempts int
}

// FrameResult is produced by the frame harvester.
type FrameResult struct {
	URLs         []string
	Interactions []string
}

// AuthResult is produced by the auth engine. Err carries the terminal
// failure when Success is false; it never propagates as a thrown error.
type AuthResult struct {
	Success      bool
	Interactions []string
	Err          error
}

// HarvestResult is produced by the cheap (non-browser) path.
type HarvestResult struct {
	URLs         []string
	Interactions []string
}

// Discoverer is the top-level entry point. Discover runs the probe, chooses
// the cheap or browser path, escalates if the yield is insufficient, and
// retries the whole attempt with backoff on failure.
//
// Discover never returns an error: all failure is represented in the
// returned result's Success flag and Interactions trace.
type Discoverer interface {
	Discover(ctx context.Context, rootURL string, desiredLinkCount int) *DiscoveryResult
}

// Prober decides whether a site needs browser rendering. Probe never fails:
// on any fetch or parse error it returns IsHeavy=true, Score=100, biasing
// toward the more thorough path.
type Prober interface {
	Probe(ctx context.Context, url string) ProbeResult
}

// Fetcher retrieves raw HTML over plain HTTP, without executing JavaScript.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// PageAnalyzer scores raw HTML for JS-heaviness signals.
type PageAnalyzer interface {
	Score(html string) (score int, indicators []string)
}

// URLClassifier decides whether a candidate URL looks like addressable
// content (vs. navigation, assets, or API endpoints). Implementations must
// be pure and deterministic given the same two strings.
type URLClassifier interface {
	LooksLikeArticle(candidateURL, baseURL string) bool
}

// URLHarvester extracts candidate URLs from rendered or raw HTML. Candidates
// are resolved to absolute form against baseURL but not classified; callers
// filter through a URLClassifier.
type URLHarvester interface {
	HarvestHTML(html string, baseURL string) ([]string, error)
}

// FeedService probes conventional feed and sitemap locations for a site and
// returns content URLs found there. It is best-effort: individual feed
// failures are reported in the trace, never as an error.
type FeedService interface {
	DiscoverFeedURLs(ctx context.Context, baseURL string) *HarvestResult
}

// CheapHarvester runs the non-browser discovery path: a direct fetch of the
// root page plus the feed/sitemap probe. Both sub-steps are best-effort.
type CheapHarvester interface {
	CheapMethods(ctx context.Context, rootURL string) *HarvestResult
}

// BrowserSession owns one live browser page for one discovery attempt.
// Sessions are single-use: element identities tracked during interaction are
// not portable across pages or attempts. Close must be called on every exit
// path.
//
// The interaction, scroll, frame, and auth operations never return errors;
// failures are folded into the returned result traces so one failing
// strategy cannot abort the rest of the attempt.
type BrowserSession interface {
	// ID returns the session's unique identifier, used in trace entries.
	ID() string

	// Navigate loads the root URL and waits for the page to settle.
	// A navigation failure is fatal to the attempt.
	Navigate(ctx context.Context, url string) error

	// ClickInteractiveElements drives load-more, pagination, read-more and
	// expandable controls to reveal hidden content.
	ClickInteractiveElements(ctx context.Context, baseURL string) *InteractionResult

	// ScrollForMore repeatedly scrolls to the bottom and harvests
	// newly-rendered links until the page stops growing.
	ScrollForMore(ctx context.Context, baseURL string) *ScrollResult

	// HarvestFrames extracts links from every non-main frame, tolerating
	// cross-origin access failures.
	HarvestFrames(ctx context.Context, baseURL string) *FrameResult

	// Authenticate detects a login form, fills and submits credentials, and
	// verifies success. Hosts that already failed once are skipped.
	Authenticate(ctx context.Context) *AuthResult

	// HarvestPage extracts classified URLs from the page's current state.
	HarvestPage(ctx context.Context, baseURL string) []string

	// CapturedURLs returns classified URLs opportunistically observed on the
	// network (requests, responses, navigations) during the session.
	CapturedURLs() []string

	// Close releases the page and its browser context.
	Close() error
}

// SessionFactory creates browser sessions. Implementations own the browser
// process lifecycle.
type SessionFactory interface {
	NewSession(ctx context.Context) (BrowserSession, error)
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
