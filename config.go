package scraper

import "time"

// Selector group categories.
const (
	GroupLoadMore   = "loadMore"
	GroupReadMore   = "readMore"
	GroupPagination = "pagination"
	GroupExpandable = "expandable"
)

// SelectorGroup is a named, ordered list of element-matching patterns for one
// category of interactive control. Groups are configuration data, loaded once
// and never mutated at runtime; they are safe to share across concurrent
// discovery attempts.
type SelectorGroup struct {
	Name      string
	Selectors []string
}

// SelectorGroups holds one group per interaction category.
type SelectorGroups struct {
	LoadMore   SelectorGroup
	ReadMore   SelectorGroup
	Pagination SelectorGroup
	Expandable SelectorGroup
}

// DefaultSelectorGroups returns the built-in selector patterns. The returned
// value is a fresh copy; callers may replace individual groups without
// affecting other consumers.
func DefaultSelectorGroups() SelectorGroups {
	return SelectorGroups{
		LoadMore: SelectorGroup{
			Name: GroupLoadMore,
			Selectors: []string{
				"button.load-more",
				"a.load-more",
				".load-more button",
				"[data-load-more]",
				"button.show-more",
				".show-more a",
				"[class*='loadMore']",
				"[class*='load_more']",
				"button.more-posts",
			},
		},
		ReadMore: SelectorGroup{
			Name: GroupReadMore,
			Selectors: []string{
				"a.read-more",
				".read-more a",
				"[class*='readMore']",
				"a.more-link",
				".entry-summary a.more",
			},
		},
		Pagination: SelectorGroup{
			Name: GroupPagination,
			Selectors: []string{
				"a[rel='next']",
				".pagination a.next",
				".pagination .next a",
				"a.next-page",
				"[class*='pagination'] a[class*='next']",
				"nav.pagination a:last-child",
			},
		},
		Expandable: SelectorGroup{
			Name: GroupExpandable,
			Selectors: []string{
				"button[aria-expanded='false']",
				".accordion-toggle",
				"details:not([open]) summary",
				"[class*='expand'] button",
			},
		},
	}
}

// InteractionConfig bounds the interaction engine. All fields are read-only
// after construction; zero values are normalized to the documented defaults.
type InteractionConfig struct {
	// MaxLoadMoreClicks bounds the load-more phase. Default 5.
	MaxLoadMoreClicks int

	// MaxPaginationHops bounds the pagination phase. Default 3.
	MaxPaginationHops int

	// MaxReadMoreClicks bounds the read-more phase. Default 5.
	MaxReadMoreClicks int

	// MaxExpandClicks bounds the expandable phase. Default 5.
	MaxExpandClicks int

	// Throttle is the delay between actions. Default 500ms.
	Throttle time.Duration

	// InteractionTimeout caps a single element interaction. Default 5s.
	InteractionTimeout time.Duration

	// NetworkTimeout is the ceiling on post-click network-idle waits; the
	// wait resolves on whichever of idle or ceiling occurs first. Default 8s.
	NetworkTimeout time.Duration

	// Backoff is an optional extra delay applied after a failed interaction.
	// Default 0 (disabled).
	Backoff time.Duration
}

// DefaultInteractionConfig returns an InteractionConfig with all defaults.
func DefaultInteractionConfig() InteractionConfig {
	return InteractionConfig{
		MaxLoadMoreClicks:  5,
		MaxPaginationHops:  3,
		MaxReadMoreClicks:  5,
		MaxExpandClicks:    5,
		Throttle:           500 * time.Millisecond,
		InteractionTimeout: 5 * time.Second,
		NetworkTimeout:     8 * time.Second,
	}
}

// Normalize returns a copy with zero fields replaced by defaults.
func (c InteractionConfig) Normalize() InteractionConfig {
	d := DefaultInteractionConfig()
	if c.MaxLoadMoreClicks <= 0 {
		c.MaxLoadMoreClicks = d.MaxLoadMoreClicks
	}
	if c.MaxPaginationHops <= 0 {
		c.MaxPaginationHops = d.MaxPaginationHops
	}
	if c.MaxReadMoreClicks <= 0 {
		c.MaxReadMoreClicks = d.MaxReadMoreClicks
	}
	if c.MaxExpandClicks <= 0 {
		c.MaxExpandClicks = d.MaxExpandClicks
	}
	if c.Throttle <= 0 {
		c.Throttle = d.Throttle
	}
	if c.InteractionTimeout <= 0 {
		c.InteractionTimeout = d.InteractionTimeout
	}
	if c.NetworkTimeout <= 0 {
		c.NetworkTimeout = d.NetworkTimeout
	}
	return c
}

// AuthConfig configures the auth engine. The engine is disabled when
// Username is empty.
type AuthConfig struct {
	Username string
	Password string

	// MaxAttempts governs immediate retries within a single call, not a
	// cross-call retry of the same host. Default 1.
	MaxAttempts int

	// NetworkTimeout caps the post-submit navigation wait. Default 10s.
	NetworkTimeout time.Duration

	// Throttle is the delay between field fills. Default 250ms.
	Throttle time.Duration
}

// DefaultAuthConfig returns an AuthConfig with all defaults and no
// credentials.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		MaxAttempts:    1,
		NetworkTimeout: 10 * time.Second,
		Throttle:       250 * time.Millisecond,
	}
}

// Normalize returns a copy with zero fields replaced by defaults.
func (c AuthConfig) Normalize() AuthConfig {
	d := DefaultAuthConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.NetworkTimeout <= 0 {
		c.NetworkTimeout = d.NetworkTimeout
	}
	if c.Throttle <= 0 {
		c.Throttle = d.Throttle
	}
	return c
}

// FeedConfig configures the feed/sitemap probe.
type FeedConfig struct {
	// Paths are the well-known locations probed on the site root.
	Paths []string

	// MaxItemsPerFeed caps the number of entries read per feed. Default 100.
	MaxItemsPerFeed int

	// FreshnessWindow discards entries older than this age. Zero disables
	// freshness filtering (the default).
	FreshnessWindow time.Duration
}

// DefaultFeedConfig returns the conventional probe paths and limits.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		Paths: []string{
			"/rss.xml",
			"/rss",
			"/feed",
			"/feed.xml",
			"/atom.xml",
			"/index.xml",
			"/sitemap.xml",
			"/sitemap_index.xml",
		},
		MaxItemsPerFeed: 100,
	}
}

// Normalize returns a copy with zero fields replaced by defaults.
func (c FeedConfig) Normalize() FeedConfig {
	d := DefaultFeedConfig()
	if len(c.Paths) == 0 {
		c.Paths = d.Paths
	}
	if c.MaxItemsPerFeed <= 0 {
		c.MaxItemsPerFeed = d.MaxItemsPerFeed
	}
	return c
}
