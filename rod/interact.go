package rod

import (
	"context"
	"fmt"
	"sort"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// interactor drives configured categories of interactive elements
// (load-more, pagination, read-more, expandable) to reveal hidden content.
// All phases share the session's visited-element set so no control is
// clicked twice, and every selector lookup is isolated: one failing
// selector is traced and the next is tried.
type interactor struct {
	cfg        scraper.InteractionConfig
	groups     scraper.SelectorGroups
	harvester  scraper.URLHarvester
	classifier scraper.URLClassifier
}

func newInteractor(cfg scraper.InteractionConfig, groups scraper.SelectorGroups, h scraper.URLHarvester, c scraper.URLClassifier) *interactor {
	return &interactor{cfg: cfg.Normalize(), groups: groups, harvester: h, classifier: c}
}

// run executes the interaction phases in order and merges their results.
func (i *interactor) run(ctx context.Context, d pageDriver, visited *visitedElements, baseURL string) *scraper.InteractionResult {
	out := &scraper.InteractionResult{Success: true}

	phases := []func(context.Context, pageDriver, *visitedElements, string) *scraper.InteractionResult{
		i.loadMorePhase,
		i.paginationPhase,
		i.readMorePhase,
		i.expandPhase,
	}

	seen := make(map[string]struct{})
	for _, phase := range phases {
		if ctx.Err() != nil {
			out.Interactions = append(out.Interactions, "interaction phases canceled")
			break
		}
		r := phase(ctx, d, visited, baseURL)
		out.Interactions = append(out.Interactions, r.Interactions...)
		out.ElementsInteracted += r.ElementsInteracted
		for _, u := range r.URLs {
			seen[u] = struct{}{}
		}
	}

	out.URLs = make([]string, 0, len(seen))
	for u := range seen {
		out.URLs = append(out.URLs, u)
	}
	sort.Strings(out.URLs)
	return out
}

// nextFresh returns the first element in the group that is not yet visited,
// visible, and enabled. Selector failures are traced and skipped.
func (i *interactor) nextFresh(d pageDriver, group scraper.SelectorGroup, visited *visitedElements, trace *[]string) (pageElement, string) {
	for _, sel := range group.Selectors {
		els, err := d.elements(sel)
		if err != nil {
			*trace = append(*trace, fmt.Sprintf("%s selector %q failed: %v", group.Name, sel, err))
			continue
		}
		for _, el := range els {
			if visited.seen(el.id()) {
				continue
			}
			if !el.visible() || !el.enabled() {
				continue
			}
			return el, sel
		}
	}
	return nil, ""
}

// loadMorePhase clicks load-more controls until the click budget is spent,
// no fresh control remains, or a click reveals nothing new (diminishing
// returns).
func (i *interactor) loadMorePhase(ctx context.Context, d pageDriver, visited *visitedElements, baseURL string) *scraper.InteractionResult {
	res := &scraper.InteractionResult{Success: true}

	for clicks := 0; clicks < i.cfg.MaxLoadMoreClicks; clicks++ {
		if ctx.Err() != nil {
			break
		}
		el, sel := i.nextFresh(d, i.groups.LoadMore, visited, &res.Interactions)
		if el == nil {
			break
		}

		before := harvestClassified(d, i.harvester, i.classifier, baseURL)
		label := el.text()

		ictx, cancel := context.WithTimeout(ctx, i.cfg.InteractionTimeout)
		err := el.click(ictx)
		cancel()
		visited.add(el.id())
		res.ElementsInteracted++

		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("load-more click %q (%s) failed: %v", label, sel, err))
			throttle(ctx, i.cfg.Backoff)
			continue
		}

		d.waitQuiet(ctx, i.cfg.NetworkTimeout)
		after := harvestClassified(d, i.harvester, i.classifier, baseURL)
		fresh := setDiff(after, before)
		res.URLs = append(res.URLs, fresh...)
		res.Interactions = append(res.Interactions, fmt.Sprintf("clicked load-more %q (%s): %d new urls", label, sel, len(fresh)))

		if len(fresh) == 0 || fingerprint(after) == fingerprint(before) {
			res.Interactions = append(res.Interactions, "no new content loaded, stopping")
			break
		}
		throttle(ctx, i.cfg.Throttle)
	}

	return res
}

// paginationPhase follows next-page controls. A pagination click is expected
// to navigate, so the click and a navigation wait are issued together.
func (i *interactor) paginationPhase(ctx context.Context, d pageDriver, visited *visitedElements, baseURL string) *scraper.InteractionResult {
	res := &scraper.InteractionResult{Success: true}

	for hop := 1; hop <= i.cfg.MaxPaginationHops; hop++ {
		if ctx.Err() != nil {
			break
		}
		el, sel := i.nextFresh(d, i.groups.Pagination, visited, &res.Interactions)
		if el == nil {
			break
		}

		before := harvestClassified(d, i.harvester, i.classifier, baseURL)
		visited.add(el.id())
		res.ElementsInteracted++

		ictx, cancel := context.WithTimeout(ctx, i.cfg.InteractionTimeout)
		err := d.waitNavigation(ctx, i.cfg.NetworkTimeout, func() error { return el.click(ictx) })
		cancel()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("pagination click (%s) failed: %v", sel, err))
			throttle(ctx, i.cfg.Backoff)
			continue
		}

		after := harvestClassified(d, i.harvester, i.classifier, baseURL)
		fresh := setDiff(after, before)
		res.URLs = append(res.URLs, fresh...)
		res.Interactions = append(res.Interactions, fmt.Sprintf("pagination hop %d to %s: %d new urls", hop, d.url(), len(fresh)))
		throttle(ctx, i.cfg.Throttle)
	}

	return res
}

// readMorePhase clicks read-more controls. A click either navigates to the
// full article (captured, then the session navigates back) or reveals
// inline content without navigating (captured by re-harvesting the page).
func (i *interactor) readMorePhase(ctx context.Context, d pageDriver, visited *visitedElements, baseURL string) *scraper.InteractionResult {
	res := &scraper.InteractionResult{Success: true}

	for clicks := 0; clicks < i.cfg.MaxReadMoreClicks; clicks++ {
		if ctx.Err() != nil {
			break
		}
		el, sel := i.nextFresh(d, i.groups.ReadMore, visited, &res.Interactions)
		if el == nil {
			break
		}

		before := harvestClassified(d, i.harvester, i.classifier, baseURL)
		preURL := d.url()
		visited.add(el.id())
		res.ElementsInteracted++

		ictx, cancel := context.WithTimeout(ctx, i.cfg.InteractionTimeout)
		err := el.click(ictx)
		cancel()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("read-more click (%s) failed: %v", sel, err))
			throttle(ctx, i.cfg.Backoff)
			continue
		}

		d.waitQuiet(ctx, i.cfg.NetworkTimeout)

		if cur := d.url(); cur != preURL {
			cur = scraper.NormalizeURL(cur)
			if i.classifier.LooksLikeArticle(cur, baseURL) {
				res.URLs = append(res.URLs, cur)
				res.Interactions = append(res.Interactions, fmt.Sprintf("read-more navigated to %s", cur))
			} else {
				res.Interactions = append(res.Interactions, fmt.Sprintf("read-more navigated to non-content %s", cur))
			}
			if err := d.navigateBack(ctx); err != nil {
				res.Interactions = append(res.Interactions, fmt.Sprintf("navigate back failed: %v", err))
				break
			}
			d.waitQuiet(ctx, i.cfg.NetworkTimeout)
		} else {
			after := harvestClassified(d, i.harvester, i.classifier, baseURL)
			fresh := setDiff(after, before)
			res.URLs = append(res.URLs, fresh...)
			res.Interactions = append(res.Interactions, fmt.Sprintf("read-more expanded inline: %d new urls", len(fresh)))
		}
		throttle(ctx, i.cfg.Throttle)
	}

	return res
}

// expandPhase opens expandable sections (accordions, details) that can hide
// anchor lists. Expansion never navigates.
func (i *interactor) expandPhase(ctx context.Context, d pageDriver, visited *visitedElements, baseURL string) *scraper.InteractionResult {
	res := &scraper.InteractionResult{Success: true}

	for clicks := 0; clicks < i.cfg.MaxExpandClicks; clicks++ {
		if ctx.Err() != nil {
			break
		}
		el, sel := i.nextFresh(d, i.groups.Expandable, visited, &res.Interactions)
		if el == nil {
			break
		}

		before := harvestClassified(d, i.harvester, i.classifier, baseURL)
		visited.add(el.id())
		res.ElementsInteracted++

		ictx, cancel := context.WithTimeout(ctx, i.cfg.InteractionTimeout)
		err := el.click(ictx)
		cancel()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("expand click (%s) failed: %v", sel, err))
			continue
		}

		after := harvestClassified(d, i.harvester, i.classifier, baseURL)
		fresh := setDiff(after, before)
		res.URLs = append(res.URLs, fresh...)
		res.Interactions = append(res.Interactions, fmt.Sprintf("expanded section (%s): %d new urls", sel, len(fresh)))
		throttle(ctx, i.cfg.Throttle)
	}

	return res
}
