package rod

import (
	"context"
	"fmt"
	"sort"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// Infinite-scroll defaults.
const (
	DefaultMaxScrollAttempts = 8
	DefaultScrollSettle      = 800 * time.Millisecond
)

// scroller repeatedly scrolls a live page to its bottom and harvests
// newly-rendered links until the page stops growing or the attempt budget
// is exhausted.
type scroller struct {
	maxAttempts int
	settle      time.Duration
	harvester   scraper.URLHarvester
	classifier  scraper.URLClassifier
}

func newScroller(maxAttempts int, settle time.Duration, h scraper.URLHarvester, c scraper.URLClassifier) *scroller {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxScrollAttempts
	}
	if settle <= 0 {
		settle = DefaultScrollSettle
	}
	return &scroller{maxAttempts: maxAttempts, settle: settle, harvester: h, classifier: c}
}

// run drives the scroll loop. Each iteration scrolls to the current bottom,
// waits a fixed settle time, and compares document height before and after;
// an unchanged height means no more content.
func (s *scroller) run(ctx context.Context, d pageDriver, baseURL string) *scraper.ScrollResult {
	res := &scraper.ScrollResult{}
	collected := harvestClassified(d, s.harvester, s.classifier, baseURL)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			res.Interactions = append(res.Interactions, "scrolling canceled")
			break
		}

		before, err := d.pageHeight()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("scroll attempt %d: height read failed: %v", attempt, err))
			break
		}
		if err := d.scrollToBottom(); err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("scroll attempt %d failed: %v", attempt, err))
			break
		}
		res.ScrollAttempts++

		throttle(ctx, s.settle)

		after, err := d.pageHeight()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("scroll attempt %d: height read failed: %v", attempt, err))
			break
		}

		if after <= before {
			res.Interactions = append(res.Interactions, fmt.Sprintf("scroll attempt %d: height stable at %.0f, stopping", attempt, after))
			break
		}

		fresh := setDiff(harvestClassified(d, s.harvester, s.classifier, baseURL), collected)
		for _, u := range fresh {
			collected[u] = struct{}{}
		}
		res.Interactions = append(res.Interactions, fmt.Sprintf("scroll attempt %d: height %.0f -> %.0f, %d new urls", attempt, before, after, len(fresh)))
	}

	// The collected set includes the initially visible URLs; scroll results
	// merge into the attempt's overall set upstream, so over-reporting here
	// is harmless while under-reporting would lose content.
	res.URLs = make([]string, 0, len(collected))
	for u := range collected {
		res.URLs = append(res.URLs, u)
	}
	sort.Strings(res.URLs)
	return res
}
