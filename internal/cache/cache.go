package cache

import (
	"context"
	"sync"
	"time"

	"github.com/almanac-cloud/almanac/internal/metrics"
	"github.com/google/uuid"
)

// Kind enumerates the cached query shapes.
type Kind string

const (
	KindList    Kind = "list"
	KindDetail  Kind = "detail"
	KindRuns    Kind = "runs"
	KindLastRun Kind = "last_run"
	KindRange   Kind = "range"
)

// Key identifies one cached query result. Keys are comparable
// value types so they can index the entry map directly.
type Key struct {
	Kind   Kind
	User   uuid.UUID
	ID     uuid.UUID
	Filter string
	Start  string
	End    string
}

// ListKey caches "automations for user with status filter".
func ListKey(userID uuid.UUID, filter string) Key {
	return Key{Kind: KindList, User: userID, Filter: filter}
}

// DetailKey caches a single automation by id.
func DetailKey(id uuid.UUID) Key {
	return Key{Kind: KindDetail, ID: id}
}

// RunsKey caches the run history of one automation.
func RunsKey(automationID uuid.UUID) Key {
	return Key{Kind: KindRuns, ID: automationID}
}

// LastRunKey caches the audit snapshot of one automation.
func LastRunKey(automationID uuid.UUID) Key {
	return Key{Kind: KindLastRun, ID: automationID}
}

// RangeKey caches "runs for user between start and end".
func RangeKey(userID uuid.UUID, start, end time.Time) Key {
	return Key{
		Kind:  KindRange,
		User:  userID,
		Start: start.UTC().Format(time.RFC3339),
		End:   end.UTC().Format(time.RFC3339),
	}
}

// FetchFunc loads the value for a key from the store.
type FetchFunc func(ctx context.Context) (interface{}, error)

type entry struct {
	value     interface{}
	fetchedAt time.Time
}

type call struct {
	done  chan struct{}
	value interface{}
	err   error
}

// Cache keeps query results fresh within a staleness window and
// coalesces concurrent fetches of the same key. The clock is
// injectable so tests control freshness deterministically.
type Cache struct {
	mu       sync.Mutex
	entries  map[Key]entry
	inflight map[Key]*call
	gen      map[Key]uint64
	ttl      time.Duration
	now      func() time.Time
}

// New creates a cache whose entries stay fresh for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries:  make(map[Key]entry),
		inflight: make(map[Key]*call),
		gen:      make(map[Key]uint64),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the cache's time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// GetOrFetch returns the cached value for key when fresh, otherwise
// fetches it. At most one fetch per key is in flight at a time;
// concurrent callers share the result of the single fetch.
func (c *Cache) GetOrFetch(ctx context.Context, key Key, fetch FetchFunc) (interface{}, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) <= c.ttl {
		c.mu.Unlock()
		metrics.CacheRequestsTotal.WithLabelValues(string(key.Kind), "hit").Inc()
		return e.value, nil
	}

	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		metrics.CacheRequestsTotal.WithLabelValues(string(key.Kind), "coalesced").Inc()
		select {
		case <-inflight.done:
			return inflight.value, inflight.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	current := &call{done: make(chan struct{})}
	c.inflight[key] = current
	gen := c.gen[key]
	c.mu.Unlock()

	metrics.CacheRequestsTotal.WithLabelValues(string(key.Kind), "miss").Inc()

	value, err := fetch(ctx)
	current.value, current.err = value, err

	c.mu.Lock()
	delete(c.inflight, key)
	// an invalidation that raced the fetch bumps the generation;
	// a result fetched before the write resolved must not be cached
	if err == nil && c.gen[key] == gen {
		c.entries[key] = entry{value: value, fetchedAt: c.now()}
	}
	c.mu.Unlock()

	close(current.done)
	return value, err
}

// Invalidate drops one key.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drop(key)
}

// InvalidateLists drops every list entry belonging to userID,
// regardless of status filter.
func (c *Cache) InvalidateLists(userID uuid.UUID) {
	c.invalidateMatching(func(k Key) bool {
		return k.Kind == KindList && k.User == userID
	})
}

// InvalidateDetail drops the detail entry for one automation.
func (c *Cache) InvalidateDetail(id uuid.UUID) {
	c.Invalidate(DetailKey(id))
}

// InvalidateRuns drops the run history and audit snapshot entries
// for one automation.
func (c *Cache) InvalidateRuns(automationID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drop(RunsKey(automationID))
	c.drop(LastRunKey(automationID))
}

// InvalidateRanges drops every runs-in-range entry for userID.
func (c *Cache) InvalidateRanges(userID uuid.UUID) {
	c.invalidateMatching(func(k Key) bool {
		return k.Kind == KindRange && k.User == userID
	})
}

func (c *Cache) invalidateMatching(match func(Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if match(k) {
			c.drop(k)
		}
	}
	for k := range c.inflight {
		if match(k) {
			c.gen[k]++
		}
	}
}

// drop removes a stored entry and bumps the key's generation so a
// concurrent in-flight fetch cannot repopulate it with stale data.
// Callers hold c.mu.
func (c *Cache) drop(key Key) {
	delete(c.entries, key)
	c.gen[key]++
	metrics.CacheInvalidationsTotal.WithLabelValues(string(key.Kind)).Inc()
}
