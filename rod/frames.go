package rod

import (
	"context"
	"fmt"
	"sort"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

// framer extracts links from every non-main frame embedded in a page. The
// scan is partial-failure tolerant: a cross-origin or access-denied frame is
// traced and skipped, never aborting the remaining frames.
type framer struct {
	harvester  scraper.URLHarvester
	classifier scraper.URLClassifier
}

func newFramer(h scraper.URLHarvester, c scraper.URLClassifier) *framer {
	return &framer{harvester: h, classifier: c}
}

func (f *framer) run(ctx context.Context, d pageDriver, baseURL string) *scraper.FrameResult {
	res := &scraper.FrameResult{}

	frames, err := d.frames()
	if err != nil {
		res.Interactions = append(res.Interactions, fmt.Sprintf("frame scan failed: %v", err))
		return res
	}
	if len(frames) == 0 {
		return res
	}

	seen := make(map[string]struct{})
	for _, frame := range frames {
		if ctx.Err() != nil {
			res.Interactions = append(res.Interactions, "frame scan canceled")
			break
		}

		html, err := frame.html()
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("frame %s: cross-origin access denied: %v", frame.describe(), err))
			continue
		}

		candidates, err := f.harvester.HarvestHTML(html, baseURL)
		if err != nil {
			res.Interactions = append(res.Interactions, fmt.Sprintf("frame %s: harvest failed: %v", frame.describe(), err))
			continue
		}

		added := 0
		for _, u := range candidates {
			u = scraper.NormalizeURL(u)
			if !f.classifier.LooksLikeArticle(u, baseURL) {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			added++
		}
		res.Interactions = append(res.Interactions, fmt.Sprintf("frame %s: %d urls", frame.describe(), added))
	}

	res.URLs = make([]string, 0, len(seen))
	for u := range seen {
		res.URLs = append(res.URLs, u)
	}
	sort.Strings(res.URLs)
	return res
}
