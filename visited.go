package scraper

import (
	"net/url"
	"strings"
	"sync"
)

// VisitedHostSet tracks hostnames already attempted for login, bounding
// authentication to one attempt per host per process lifetime. It is safe
// for concurrent use.
type VisitedHostSet struct {
	mu    sync.Mutex
	hosts map[string]struct{}
}

// NewVisitedHostSet creates an empty VisitedHostSet.
func NewVisitedHostSet() *VisitedHostSet {
	return &VisitedHostSet{hosts: make(map[string]struct{})}
}

// Mark records the host of rawURL as attempted. Reports false if the host
// was already marked or the URL has no parseable host.
func (s *VisitedHostSet) Mark(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hosts[host]; ok {
		return false
	}
	s.hosts[host] = struct{}{}
	return true
}

// Seen reports whether the host of rawURL has already been attempted.
func (s *VisitedHostSet) Seen(rawURL string) bool {
	host := hostOf(rawURL)
	if host == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.hosts[host]
	return ok
}

// Len returns the number of marked hosts.
func (s *VisitedHostSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hosts)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
