package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxSessionsPerBrowser is the number of discovery sessions served
// before the browser process is recycled.
const DefaultMaxSessionsPerBrowser = 50

// Manager owns the shared Chrome process and recycles it periodically.
// Chrome accumulates memory under sustained automation and the baseline
// never returns to initial levels even with proper page cleanup, so a
// long-running discovery worker replaces the process after a bounded number
// of sessions.
//
// Manager is safe for concurrent use.
type Manager struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	sessionCount int64
	maxSessions  int64
	mu           sync.Mutex
	closed       atomic.Bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxSessions sets the number of sessions before the browser is
// recycled. Defaults to DefaultMaxSessionsPerBrowser.
func WithMaxSessions(n int64) ManagerOption {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

// NewManager creates a Manager and launches a headless Chrome browser.
// Close must be called when the Manager is no longer needed.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		maxSessions: DefaultMaxSessionsPerBrowser,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.launchBrowser(); err != nil {
		return nil, err
	}

	return m, nil
}

// Browser returns the current browser instance, recycling it if the session
// count has reached the threshold. Callers register each served session via
// SessionStarted.
func (m *Manager) Browser() *rod.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	if atomic.LoadInt64(&m.sessionCount) >= m.maxSessions {
		m.recycleBrowser()
	}

	return m.browser
}

// SessionStarted advances the recycling counter.
func (m *Manager) SessionStarted() {
	atomic.AddInt64(&m.sessionCount, 1)
}

// Close releases browser resources. Close is safe to call multiple times.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (m *Manager) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser = browser
	m.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (m *Manager) closeBrowser() error {
	var err error
	if m.browser != nil {
		err = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Kill()
		m.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If the new
// launch fails, the old browser is kept so in-flight sessions survive.
// Must be called with mu held.
func (m *Manager) recycleBrowser() {
	oldBrowser := m.browser
	oldLauncher := m.launcher
	m.browser = nil
	m.launcher = nil

	if err := m.launchBrowser(); err != nil {
		m.browser = oldBrowser
		m.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&m.sessionCount, 0)
}
