// Package cache provides the per-process memo for semantic-match results.
// Nothing here outlives the process; evidence results are never cached.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MatchMemo memoizes semantic-match identifier lists by term
type MatchMemo struct {
	cache *gocache.Cache
}

// NewMatchMemo creates a memo with the given TTL
func NewMatchMemo(ttl time.Duration) *MatchMemo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &MatchMemo{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get retrieves a memoized identifier list
func (m *MatchMemo) Get(term string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	if val, found := m.cache.Get(term); found {
		return val.([]string), true
	}
	return nil, false
}

// Set stores an identifier list under the term
func (m *MatchMemo) Set(term string, ids []string) {
	if m == nil {
		return
	}
	m.cache.SetDefault(term, ids)
}
