// Package scraper provides adaptive link discovery for websites.
// Given a root page it finds the set of content URLs reachable from it,
// escalating from cheap static analysis (raw HTML, feeds, sitemaps) to
// full headless-browser interaction (load-more clicking, infinite scroll,
// frame harvesting, login handling) only when the cheap yield is
// insufficient.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, rod/, goquery/).
package scraper
