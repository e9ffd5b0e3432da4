package rod

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	"github.com/cespare/xxhash/v2"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// pageDriver is the seam between the interaction engines and the live
// browser page. The engines are written against this interface so their
// control flow is testable without a browser; rodDriver is the production
// implementation.
type pageDriver interface {
	// url returns the page's current URL.
	url() string

	// html returns the page's current rendered HTML.
	html() (string, error)

	// elements returns all elements matching the CSS selector.
	elements(selector string) ([]pageElement, error)

	// element returns the first element matching the CSS selector.
	element(selector string) (pageElement, bool)

	// waitQuiet blocks until the page reaches network idle or the ceiling
	// elapses, whichever occurs first. It never fails: a site that never
	// goes idle simply costs the ceiling.
	waitQuiet(ctx context.Context, ceiling time.Duration)

	// waitNavigation runs trigger (typically a click expected to navigate)
	// and blocks until navigation settles or the ceiling elapses.
	waitNavigation(ctx context.Context, ceiling time.Duration, trigger func() error) error

	// navigateBack returns to the previous page in session history.
	navigateBack(ctx context.Context) error

	// scrollToBottom scrolls the window to the current document bottom.
	scrollToBottom() error

	// pageHeight returns the current document scroll height.
	pageHeight() (float64, error)

	// frames returns a handle per non-main frame attached to the page.
	frames() ([]frameHandle, error)
}

// pageElement is a live element handle. Identity (id) is stable for the
// lifetime of the page and is the key of the session's visited-element set.
type pageElement interface {
	id() string
	text() string
	visible() bool
	enabled() bool
	click(ctx context.Context) error
	fill(ctx context.Context, value string) error
	attr(name string) (string, bool)
}

// frameHandle exposes one embedded frame. html may fail on cross-origin
// frames; callers treat that as a per-frame condition, not a scan failure.
type frameHandle interface {
	describe() string
	html() (string, error)
}

// rodDriver adapts a *rod.Page to pageDriver.
type rodDriver struct {
	page *rod.Page
}

var _ pageDriver = (*rodDriver)(nil)

func (d *rodDriver) url() string {
	info, err := d.page.Info()
	if err != nil || info == nil {
		return ""
	}
	return info.URL
}

func (d *rodDriver) html() (string, error) {
	return d.page.HTML()
}

func (d *rodDriver) elements(selector string) ([]pageElement, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	out := make([]pageElement, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out, nil
}

func (d *rodDriver) element(selector string) (pageElement, bool) {
	els, err := d.elements(selector)
	if err != nil || len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

// waitQuiet races "wait for network idle" against a fixed ceiling on one
// shared cancellable context, so whichever resolves first cancels the other
// cleanly.
func (d *rodDriver) waitQuiet(ctx context.Context, ceiling time.Duration) {
	wctx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()
	wait := d.page.Context(wctx).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	wait()
}

func (d *rodDriver) waitNavigation(ctx context.Context, ceiling time.Duration, trigger func() error) error {
	wctx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()
	wait := d.page.Context(wctx).WaitNavigation(proto.PageLifecycleEventNameNetworkAlmostIdle)
	if err := trigger(); err != nil {
		return err
	}
	wait()
	return nil
}

func (d *rodDriver) navigateBack(ctx context.Context) error {
	return d.page.Context(ctx).NavigateBack()
}

func (d *rodDriver) scrollToBottom() error {
	_, err := d.page.Eval(`() => window.scrollTo(0, document.body ? document.body.scrollHeight : 0)`)
	return err
}

func (d *rodDriver) pageHeight() (float64, error) {
	res, err := d.page.Eval(`() => document.body ? document.body.scrollHeight : 0`)
	if err != nil {
		return 0, err
	}
	return res.Value.Num(), nil
}

func (d *rodDriver) frames() ([]frameHandle, error) {
	els, err := d.page.Elements("iframe, frame")
	if err != nil {
		return nil, fmt.Errorf("enumerating frames: %w", err)
	}
	out := make([]frameHandle, 0, len(els))
	for i, el := range els {
		out = append(out, &rodFrame{el: el, index: i})
	}
	return out, nil
}

// rodElement adapts a *rod.Element to pageElement.
type rodElement struct {
	el *rod.Element
}

var _ pageElement = (*rodElement)(nil)

// id returns the element's DevTools remote object ID. Object IDs are unique
// per live element and are never portable across pages or sessions.
func (e *rodElement) id() string {
	return string(e.el.Object.ObjectID)
}

func (e *rodElement) text() string {
	t, err := e.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

func (e *rodElement) visible() bool {
	v, err := e.el.Visible()
	return err == nil && v
}

func (e *rodElement) enabled() bool {
	v, err := e.el.Property("disabled")
	if err != nil {
		return true
	}
	return !v.Bool()
}

func (e *rodElement) click(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scrolling into view: %w", err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) fill(ctx context.Context, value string) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(value)
}

func (e *rodElement) attr(name string) (string, bool) {
	v, err := e.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

// rodFrame adapts an iframe/frame element to frameHandle.
type rodFrame struct {
	el    *rod.Element
	index int
}

var _ frameHandle = (*rodFrame)(nil)

func (f *rodFrame) describe() string {
	if src, ok := (&rodElement{el: f.el}).attr("src"); ok && src != "" {
		return src
	}
	return fmt.Sprintf("frame %d", f.index)
}

func (f *rodFrame) html() (string, error) {
	fp, err := f.el.Frame()
	if err != nil {
		return "", err
	}
	return fp.HTML()
}

// visitedElements tracks which live element handles were already interacted
// with during one discovery attempt. It is owned by exactly one session and
// discarded with it; its size only grows within an attempt.
type visitedElements struct {
	ids map[string]struct{}
}

func newVisitedElements() *visitedElements {
	return &visitedElements{ids: make(map[string]struct{})}
}

func (v *visitedElements) seen(id string) bool {
	_, ok := v.ids[id]
	return ok
}

func (v *visitedElements) add(id string) {
	v.ids[id] = struct{}{}
}

func (v *visitedElements) size() int {
	return len(v.ids)
}

// harvestClassified extracts the page's current candidate URLs and returns
// the classified set.
func harvestClassified(d pageDriver, h scraper.URLHarvester, c scraper.URLClassifier, baseURL string) map[string]struct{} {
	out := make(map[string]struct{})
	html, err := d.html()
	if err != nil {
		return out
	}
	candidates, err := h.HarvestHTML(html, baseURL)
	if err != nil {
		return out
	}
	for _, u := range candidates {
		u = scraper.NormalizeURL(u)
		if c.LooksLikeArticle(u, baseURL) {
			out[u] = struct{}{}
		}
	}
	return out
}

// setDiff returns the URLs present in after but not in before, sorted.
func setDiff(after, before map[string]struct{}) []string {
	var out []string
	for u := range after {
		if _, ok := before[u]; !ok {
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}

// fingerprint digests a URL set so consecutive snapshots can be compared
// cheaply. Identical fingerprints mean the interaction revealed nothing.
func fingerprint(set map[string]struct{}) uint64 {
	urls := make([]string, 0, len(set))
	for u := range set {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return xxhash.Sum64String(strings.Join(urls, "\n"))
}

// throttle sleeps for d unless the context ends first.
func throttle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
