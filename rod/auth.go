package rod

import (
	"context"
	"fmt"
	"strings"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Login-detection selector lists, tried in order. These are tuned starting
// points in the same spirit as the classifier keyword lists.
var (
	loginFormSelectors = []string{
		"form#login",
		"form#login-form",
		"form[action*='login']",
		"form[action*='signin']",
		"form[action*='session']",
		".login-form form",
		"form.login",
		"form[id*='auth']",
	}

	usernameFieldSelectors = []string{
		"input[name='username']",
		"input[name='email']",
		"input[name='login']",
		"input[type='email']",
		"input[autocomplete='username']",
	}

	passwordFieldSelectors = []string{
		"input[type='password']",
	}

	submitControlSelectors = []string{
		"button[type='submit']",
		"input[type='submit']",
		"button.login",
		"button[name='commit']",
	}

	csrfTokenSelectors = []string{
		"input[name='csrf_token']",
		"input[name='_csrf']",
		"input[name='authenticity_token']",
	}

	loginErrorSelectors = []string{
		".error-message",
		".alert-danger",
		".login-error",
		"[class*='error'][class*='login']",
	}

	loginURLMarkers = []string{"login", "signin", "sign-in", "auth"}
)

// authenticator detects a login form on a live page, fills and submits
// credentials, and verifies success. A host is attempted at most once per
// process lifetime, guarded by the shared VisitedHostSet; MaxAttempts only
// governs immediate retries within one call.
type authenticator struct {
	cfg   scraper.AuthConfig
	hosts *scraper.VisitedHostSet
}

func newAuthenticator(cfg scraper.AuthConfig, hosts *scraper.VisitedHostSet) *authenticator {
	return &authenticator{cfg: cfg.Normalize(), hosts: hosts}
}

// run performs the login flow. Any step failing is a login failure, never a
// fatal error: discovery continues unauthenticated since some content may
// still be reachable.
func (a *authenticator) run(ctx context.Context, d pageDriver) *scraper.AuthResult {
	res := &scraper.AuthResult{}
	trace := func(format string, args ...any) {
		res.Interactions = append(res.Interactions, fmt.Sprintf(format, args...))
	}

	if a.cfg.Username == "" {
		trace("no credentials configured, skipping login")
		return res
	}

	pageURL := d.url()
	if a.hosts.Seen(pageURL) {
		trace("host already attempted, skipping login: %s", pageURL)
		return res
	}
	// One login attempt per host per process, regardless of outcome.
	defer a.hosts.Mark(pageURL)

	formSel, ok := a.findLoginForm(d)
	if !ok {
		trace("no login form detected")
		return res
	}
	trace("login form detected (%s)", formSel)

	for attempt := 1; attempt <= a.cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			trace("login canceled")
			break
		}
		ok, err := a.attempt(ctx, d, formSel, trace)
		if err != nil {
			res.Err = err
			trace("login attempt %d failed: %v", attempt, err)
			continue
		}
		if ok {
			res.Success = true
			res.Err = nil
			trace("login verified")
			return res
		}
		res.Err = scraper.Errorf(scraper.EINVALID, "credentials rejected")
		trace("login attempt %d rejected", attempt)
	}

	return res
}

// findLoginForm tries the form-container selectors in order.
func (a *authenticator) findLoginForm(d pageDriver) (string, bool) {
	for _, sel := range loginFormSelectors {
		if el, ok := d.element(sel); ok && el.visible() {
			return sel, true
		}
	}
	return "", false
}

// attempt fills and submits the form once, then verifies the outcome.
func (a *authenticator) attempt(ctx context.Context, d pageDriver, formSel string, trace func(string, ...any)) (bool, error) {
	user, ok := a.findInForm(d, formSel, usernameFieldSelectors)
	if !ok {
		return false, scraper.Errorf(scraper.ENOTFOUND, "username field not found")
	}
	pass, ok := a.findInForm(d, formSel, passwordFieldSelectors)
	if !ok {
		return false, scraper.Errorf(scraper.ENOTFOUND, "password field not found")
	}
	submit, ok := a.findInForm(d, formSel, submitControlSelectors)
	if !ok {
		return false, scraper.Errorf(scraper.ENOTFOUND, "submit control not found")
	}

	// CSRF token is read for the trace but never required: browsers submit
	// it with the form automatically.
	if token, ok := a.findInForm(d, formSel, csrfTokenSelectors); ok {
		if v, has := token.attr("value"); has && v != "" {
			trace("csrf token present")
		}
	}

	if err := user.fill(ctx, a.cfg.Username); err != nil {
		return false, fmt.Errorf("filling username: %w", err)
	}
	throttle(ctx, a.cfg.Throttle)
	if err := pass.fill(ctx, a.cfg.Password); err != nil {
		return false, fmt.Errorf("filling password: %w", err)
	}
	throttle(ctx, a.cfg.Throttle)

	if err := d.waitNavigation(ctx, a.cfg.NetworkTimeout, func() error { return submit.click(ctx) }); err != nil {
		return false, fmt.Errorf("submitting login form: %w", err)
	}

	return a.verify(d), nil
}

// findInForm tries each selector scoped to the form container, then
// unscoped as a fallback for forms assembled outside their container.
func (a *authenticator) findInForm(d pageDriver, formSel string, selectors []string) (pageElement, bool) {
	for _, sel := range selectors {
		if el, ok := d.element(formSel + " " + sel); ok {
			return el, true
		}
	}
	for _, sel := range selectors {
		if el, ok := d.element(sel); ok {
			return el, true
		}
	}
	return nil, false
}

// verify reports login success: the resulting URL no longer looks like a
// login page and no visible error message is present.
func (a *authenticator) verify(d pageDriver) bool {
	cur := strings.ToLower(d.url())
	for _, marker := range loginURLMarkers {
		if strings.Contains(cur, marker) {
			return false
		}
	}
	for _, sel := range loginErrorSelectors {
		if el, ok := d.element(sel); ok && el.visible() && el.text() != "" {
			return false
		}
	}
	return true
}
