package mock

import (
	scraper "github.com/Sharathchenna/web-scraper-sub000"
)

var _ scraper.URLClassifier = (*URLClassifier)(nil)

// URLClassifier is a mock implementation of scraper.URLClassifier.
type URLClassifier struct {
	LooksLikeArticleFn func(candidateURL, baseURL string) bool
}

func (c *URLClassifier) LooksLikeArticle(candidateURL, baseURL string) bool {
	return c.LooksLikeArticleFn(candidateURL, baseURL)
}

var _ scraper.URLHarvester = (*URLHarvester)(nil)

// URLHarvester is a mock implementation of scraper.URLHarvester.
type URLHarvester struct {
	HarvestHTMLFn func(html string, baseURL string) ([]string, error)
}

func (h *URLHarvester) HarvestHTML(html string, baseURL string) ([]string, error) {
	return h.HarvestHTMLFn(html, baseURL)
}
