// Package pagecache caches rendered console views by path and drops them when a mutation
// makes them stale.
package pagecache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Invalidator drops every cached variant of the given view paths.
type Invalidator interface {
	Invalidate(ctx context.Context, paths ...string) error
}

// Cache stores view bodies keyed by path and query string.
// Invalidating a path removes all of its query variants and advances its generation.
//
// A reader takes the generation before loading a view and passes it to Set. Set stores nothing
// when the path was invalidated in between, so a load that raced a mutation cannot put the
// pre-mutation view back.
type Cache interface {
	Invalidator
	Get(ctx context.Context, path, query string) ([]byte, bool, error)
	Generation(ctx context.Context, path string) (uint64, error)
	Set(ctx context.Context, path, query string, gen uint64, body []byte) (stored bool, err error)
}

// Normalize trims a trailing slash so /events and /events/ share one entry.
func Normalize(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

type entry struct {
	body    []byte
	expires time.Time
}

// Memory is a process-local Cache.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	views map[string]map[string]entry
	gens  map[string]uint64
}

// NewMemory creates an in-memory cache. A zero ttl keeps entries until invalidated.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:   ttl,
		now:   time.Now,
		views: make(map[string]map[string]entry),
		gens:  make(map[string]uint64),
	}
}

func (m *Memory) Get(_ context.Context, path, query string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.views[Normalize(path)][query]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		return nil, false, nil
	}
	return e.body, true, nil
}

func (m *Memory) Generation(_ context.Context, path string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gens[Normalize(path)], nil
}

func (m *Memory) Set(_ context.Context, path, query string, gen uint64, body []byte) (bool, error) {
	path = Normalize(path)
	e := entry{body: append([]byte(nil), body...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[path] != gen {
		return false, nil
	}
	variants, ok := m.views[path]
	if !ok {
		variants = make(map[string]entry)
		m.views[path] = variants
	}
	variants[query] = e
	return true, nil
}

func (m *Memory) Invalidate(_ context.Context, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		p = Normalize(p)
		delete(m.views, p)
		m.gens[p]++
	}
	return nil
}

// Len reports how many paths currently hold at least one variant.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}
