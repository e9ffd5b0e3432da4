package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	scraper "github.com/Sharathchenna/web-scraper-sub000"
	scraperhttp "github.com/Sharathchenna/web-scraper-sub000/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssBody = `<?xml version="1.0"?>
<rss version="2.0"><channel>
	<title>Example</title>
	<item><link>https://example.com/blog/rss-one</link><pubDate>Mon, 02 Jan 2023 15:04:05 +0000</pubDate></item>
	<item><link>https://example.com/blog/rss-two</link></item>
</channel></rss>`

const atomBody = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<entry><link rel="alternate" href="https://example.com/blog/atom-one"/><updated>2023-01-02T15:04:05Z</updated></entry>
	<entry><link href="https://example.com/blog/atom-two"/></entry>
</feed>`

func sitemapBody(urls ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, u := range urls {
		fmt.Fprintf(&b, "<url><loc>%s</loc></url>", u)
	}
	b.WriteString(`</urlset>`)
	return b.String()
}

func TestFeedService_DiscoverFeedURLs(t *testing.T) {
	t.Parallel()

	t.Run("collects rss atom and sitemap entries", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(rssBody))
		})
		mux.HandleFunc("/atom.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(atomBody))
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sitemapBody("https://example.com/blog/sm-one")))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := scraperhttp.NewFeedService(srv.Client())
		result := s.DiscoverFeedURLs(context.Background(), srv.URL+"/")

		assert.ElementsMatch(t, []string{
			"https://example.com/blog/rss-one",
			"https://example.com/blog/rss-two",
			"https://example.com/blog/atom-one",
			"https://example.com/blog/atom-two",
			"https://example.com/blog/sm-one",
		}, result.URLs)
		assert.NotEmpty(t, result.Interactions)
	})

	t.Run("robots sitemap directive is honored", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-map.xml\n", srvURL)
		})
		mux.HandleFunc("/custom-map.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sitemapBody("https://example.com/blog/from-robots")))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		s := scraperhttp.NewFeedService(srv.Client())
		result := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Contains(t, result.URLs, "https://example.com/blog/from-robots")
	})

	t.Run("sitemap index resolves recursively", func(t *testing.T) {
		t.Parallel()

		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap_index.xml", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex><sitemap><loc>%s/child-map.xml</loc></sitemap></sitemapindex>`, srvURL)
		})
		mux.HandleFunc("/child-map.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sitemapBody("https://example.com/blog/nested-entry")))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()
		srvURL = srv.URL

		s := scraperhttp.NewFeedService(srv.Client())
		result := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Contains(t, result.URLs, "https://example.com/blog/nested-entry")
	})

	t.Run("freshness window discards stale entries", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel>
				<item><link>https://example.com/blog/fresh</link><pubDate>Mon, 02 Jan 2023 15:04:05 +0000</pubDate></item>
				<item><link>https://example.com/blog/stale</link><pubDate>Tue, 02 Jan 2018 15:04:05 +0000</pubDate></item>
				<item><link>https://example.com/blog/undated</link></item>
			</channel></rss>`))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		now := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
		cfg := scraper.DefaultFeedConfig()
		cfg.FreshnessWindow = 30 * 24 * time.Hour
		s := scraperhttp.NewFeedService(srv.Client(),
			scraperhttp.WithFeedConfig(cfg),
			scraperhttp.WithClock(func() time.Time { return now }),
		)
		result := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Contains(t, result.URLs, "https://example.com/blog/fresh")
		assert.Contains(t, result.URLs, "https://example.com/blog/undated", "unparseable or missing dates are kept")
		assert.NotContains(t, result.URLs, "https://example.com/blog/stale")
	})

	t.Run("per-feed item cap", func(t *testing.T) {
		t.Parallel()

		var urls []string
		for i := 0; i < 20; i++ {
			urls = append(urls, fmt.Sprintf("https://example.com/blog/post-%d", i))
		}
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(sitemapBody(urls...)))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		cfg := scraper.DefaultFeedConfig()
		cfg.MaxItemsPerFeed = 5
		s := scraperhttp.NewFeedService(srv.Client(), scraperhttp.WithFeedConfig(cfg))
		result := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Len(t, result.URLs, 5)
	})

	t.Run("failures are traced not fatal", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("this is not xml at all {"))
		})
		mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(rssBody))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := scraperhttp.NewFeedService(srv.Client())
		result := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Contains(t, result.URLs, "https://example.com/blog/rss-one")
	})

	t.Run("idempotent against an unchanged site", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/rss.xml", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(rssBody))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := scraperhttp.NewFeedService(srv.Client())
		first := s.DiscoverFeedURLs(context.Background(), srv.URL)
		second := s.DiscoverFeedURLs(context.Background(), srv.URL)

		assert.Equal(t, first.URLs, second.URLs)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		s := scraperhttp.NewFeedService(nil)
		result := s.DiscoverFeedURLs(context.Background(), "not-a-url")

		require.Empty(t, result.URLs)
		require.Len(t, result.Interactions, 1)
		assert.Contains(t, result.Interactions[0], "invalid base URL")
	})
}
