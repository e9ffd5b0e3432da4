// Package rod implements the browser-automation side of the discovery
// engine on go-rod: session lifecycle, interactive-element driving,
// infinite scroll, frame harvesting, and login handling.
package rod

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/Sharathchenna/web-scraper-sub000/bloom"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

// Network-capture bloom sizing. One session can observe tens of thousands
// of requests on a busy page.
const (
	captureExpectedURLs      = 50000
	captureFalsePositiveRate = 0.01
)

// Ensure interface satisfaction at compile time.
var (
	_ scraper.SessionFactory = (*Factory)(nil)
	_ scraper.BrowserSession = (*Session)(nil)
)

// Factory creates browser sessions. It owns the shared browser process via
// the Manager and the cross-session login host guard.
type Factory struct {
	launchOnce sync.Once
	launchErr  error
	manager    *Manager

	harvester  scraper.URLHarvester
	classifier scraper.URLClassifier
	groups     scraper.SelectorGroups
	interCfg   scraper.InteractionConfig
	authCfg    scraper.AuthConfig
	hosts      *scraper.VisitedHostSet

	maxScrollAttempts int
	scrollSettle      time.Duration
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithInteractionConfig overrides the interaction bounds.
func WithInteractionConfig(cfg scraper.InteractionConfig) FactoryOption {
	return func(f *Factory) {
		f.interCfg = cfg.Normalize()
	}
}

// WithAuthConfig enables login handling with the given credentials.
func WithAuthConfig(cfg scraper.AuthConfig) FactoryOption {
	return func(f *Factory) {
		f.authCfg = cfg.Normalize()
	}
}

// WithSelectorGroups overrides the interactive-element selector patterns.
func WithSelectorGroups(groups scraper.SelectorGroups) FactoryOption {
	return func(f *Factory) {
		f.groups = groups
	}
}

// WithScrollBounds overrides the infinite-scroll attempt budget and settle
// time.
func WithScrollBounds(maxAttempts int, settle time.Duration) FactoryOption {
	return func(f *Factory) {
		f.maxScrollAttempts = maxAttempts
		f.scrollSettle = settle
	}
}

// WithVisitedHosts shares a login host guard across factories.
func WithVisitedHosts(hosts *scraper.VisitedHostSet) FactoryOption {
	return func(f *Factory) {
		f.hosts = hosts
	}
}

// NewFactory returns a session factory. The shared browser is launched
// lazily on the first NewSession call, so purely static discovery runs
// never start a browser process. Close must be called when the Factory is
// no longer needed.
func NewFactory(harvester scraper.URLHarvester, classifier scraper.URLClassifier, opts ...FactoryOption) *Factory {
	f := &Factory{
		harvester:  harvester,
		classifier: classifier,
		groups:     scraper.DefaultSelectorGroups(),
		interCfg:   scraper.DefaultInteractionConfig(),
		authCfg:    scraper.DefaultAuthConfig(),
		hosts:      scraper.NewVisitedHostSet(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewSession opens a fresh page with network-observation hooks attached.
// The returned session is single-use; Close must be called on every exit
// path.
func (f *Factory) NewSession(ctx context.Context) (scraper.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.launchOnce.Do(func() {
		f.manager, f.launchErr = NewManager()
	})
	if f.launchErr != nil {
		return nil, fmt.Errorf("launching browser: %w", f.launchErr)
	}

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	f.manager.SessionStarted()

	// The session context outlives any one operation; it bounds the network
	// event subscription and is canceled on Close.
	sctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:      uuid.New().String()[:8],
		page:    page,
		cancel:  cancel,
		driver:  &rodDriver{page: page},
		capture: newCapture(f.classifier),
	}
	s.interactor = newInteractor(f.interCfg, f.groups, f.harvester, f.classifier)
	s.scroller = newScroller(f.maxScrollAttempts, f.scrollSettle, f.harvester, f.classifier)
	s.framer = newFramer(f.harvester, f.classifier)
	s.auth = newAuthenticator(f.authCfg, f.hosts)
	s.visited = newVisitedElements()
	s.harvester = f.harvester
	s.classifier = f.classifier
	s.networkTimeout = f.interCfg.Normalize().NetworkTimeout

	// Opportunistic URL capture from requests, responses, and frame
	// navigations for the whole session lifetime.
	eventPage := page.Context(sctx)
	go eventPage.EachEvent(
		func(e *proto.NetworkRequestWillBeSent) {
			if e.Request != nil {
				s.capture.observe(e.Request.URL)
			}
		},
		func(e *proto.NetworkResponseReceived) {
			if e.Response != nil {
				s.capture.observe(e.Response.URL)
			}
		},
		func(e *proto.PageFrameNavigated) {
			if e.Frame != nil {
				s.capture.observe(e.Frame.URL)
			}
		},
	)()

	return s, nil
}

// Close releases the shared browser if one was launched.
func (f *Factory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Close()
}

// Session drives one live page for one discovery attempt.
type Session struct {
	id             string
	page           *rod.Page
	cancel         context.CancelFunc
	driver         pageDriver
	capture        *capture
	interactor     *interactor
	scroller       *scroller
	framer         *framer
	auth           *authenticator
	visited        *visitedElements
	harvester      scraper.URLHarvester
	classifier     scraper.URLClassifier
	networkTimeout time.Duration
	closeOnce      sync.Once
	closeErr       error
}

// ID returns the session identifier used in trace entries.
func (s *Session) ID() string {
	return s.id
}

// Navigate loads the root URL, waits for the load event, then waits for
// network quiet bounded by the configured ceiling.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.capture.setBase(url)

	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load of %s: %w", url, err)
	}
	s.driver.waitQuiet(ctx, s.networkTimeout)
	return nil
}

// ClickInteractiveElements runs the interaction phases against the live
// page with the session's visited-element set.
func (s *Session) ClickInteractiveElements(ctx context.Context, baseURL string) *scraper.InteractionResult {
	return s.interactor.run(ctx, s.driver, s.visited, baseURL)
}

// ScrollForMore runs the infinite-scroll loop.
func (s *Session) ScrollForMore(ctx context.Context, baseURL string) *scraper.ScrollResult {
	return s.scroller.run(ctx, s.driver, baseURL)
}

// HarvestFrames scans embedded frames for links.
func (s *Session) HarvestFrames(ctx context.Context, baseURL string) *scraper.FrameResult {
	return s.framer.run(ctx, s.driver, baseURL)
}

// Authenticate runs the login flow if a login wall is present.
func (s *Session) Authenticate(ctx context.Context) *scraper.AuthResult {
	return s.auth.run(ctx, s.driver)
}

// HarvestPage extracts classified URLs from the page's current state.
func (s *Session) HarvestPage(ctx context.Context, baseURL string) []string {
	if ctx.Err() != nil {
		return nil
	}
	set := harvestClassified(s.driver, s.harvester, s.classifier, baseURL)
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// CapturedURLs returns the classified URLs observed on the network during
// the session.
func (s *Session) CapturedURLs() []string {
	return s.capture.urls()
}

// Close cancels the event subscription and closes the page. Safe to call
// multiple times.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.page.Close()
	})
	return s.closeErr
}

// capture accumulates classified URLs observed on the network. The bloom
// filter absorbs the duplicate-heavy event stream cheaply; the exact slice
// only holds accepted URLs.
type capture struct {
	mu         sync.Mutex
	classifier scraper.URLClassifier
	seen       *bloom.Filter
	base       string
	collected  []string
}

func newCapture(classifier scraper.URLClassifier) *capture {
	return &capture{
		classifier: classifier,
		seen:       bloom.NewFilter(captureExpectedURLs, captureFalsePositiveRate),
	}
}

// setBase arms the capture; events observed before navigation are dropped.
func (c *capture) setBase(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = baseURL
}

func (c *capture) observe(rawURL string) {
	if rawURL == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.base == "" {
		return
	}
	u := scraper.NormalizeURL(rawURL)
	if c.seen.TestAndAdd(u) {
		return
	}
	if !c.classifier.LooksLikeArticle(u, c.base) {
		return
	}
	c.collected = append(c.collected, u)
}

func (c *capture) urls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.collected))
	copy(out, c.collected)
	sort.Strings(out)
	return out
}
