package mock

import (
	"context"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.BrowserSession = (*BrowserSession)(nil)

// BrowserSession is a mock implementation of scraper.BrowserSession.
type BrowserSession struct {
	IDFn                       func() string
	NavigateFn                 func(ctx context.Context, url string) error
	ClickInteractiveElementsFn func(ctx context.Context, baseURL string) *scraper.InteractionResult
	ScrollForMoreFn            func(ctx context.Context, baseURL string) *scraper.ScrollResult
	HarvestFramesFn            func(ctx context.Context, baseURL string) *scraper.FrameResult
	AuthenticateFn             func(ctx context.Context) *scraper.AuthResult
	HarvestPageFn              func(ctx context.Context, baseURL string) []string
	CapturedURLsFn             func() []string
	CloseFn                    func() error
}

func (s *BrowserSession) ID() string {
	return s.IDFn()
}

func (s *BrowserSession) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *BrowserSession) ClickInteractiveElements(ctx context.Context, baseURL string) *scraper.InteractionResult {
	return s.ClickInteractiveElementsFn(ctx, baseURL)
}

func (s *BrowserSession) ScrollForMore(ctx context.Context, baseURL string) *scraper.ScrollResult {
	return s.ScrollForMoreFn(ctx, baseURL)
}

func (s *BrowserSession) HarvestFrames(ctx context.Context, baseURL string) *scraper.FrameResult {
	return s.HarvestFramesFn(ctx, baseURL)
}

func (s *BrowserSession) Authenticate(ctx context.Context) *scraper.AuthResult {
	return s.AuthenticateFn(ctx)
}

func (s *BrowserSession) HarvestPage(ctx context.Context, baseURL string) []string {
	return s.HarvestPageFn(ctx, baseURL)
}

func (s *BrowserSession) CapturedURLs() []string {
	return s.CapturedURLsFn()
}

func (s *BrowserSession) Close() error {
	return s.CloseFn()
}

var _ scraper.SessionFactory = (*SessionFactory)(nil)

// SessionFactory is a mock implementation of scraper.SessionFactory.
type SessionFactory struct {
	NewSessionFn func(ctx context.Context) (scraper.BrowserSession, error)
	CloseFn      func() error
}

func (f *SessionFactory) NewSession(ctx context.Context) (scraper.BrowserSession, error) {
	return f.NewSessionFn(ctx)
}

func (f *SessionFactory) Close() error {
	return f.CloseFn()
}

var _ scraper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of scraper.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
