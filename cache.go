package growatt

import (
	"encoding/json"
	"net/url"
	"time"
)

// defaultCacheTTL is deliberately shorter than the vendor's shortest
// reporting interval (5 minutes), so a cached payload never outlives the
// interval it summarizes.
const defaultCacheTTL = 4 * time.Minute

// memoCache is a per-client memo table for endpoints the vendor rate-limits
// to one request per 5 minutes. It is scoped to the session and discarded
// with it. Not safe for concurrent use; the client's call model is
// synchronous and single-goroutine.
type memoCache struct {
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	body      json.RawMessage
	fetchedAt time.Time
}

func newMemoCache(ttl time.Duration) *memoCache {
	return &memoCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// cacheKey canonicalizes an endpoint and its parameters; url.Values.Encode
// sorts by key, so equivalent requests map to the same entry.
func cacheKey(endpoint string, params url.Values) string {
	return endpoint + "?" + params.Encode()
}

func (c *memoCache) get(key string) (json.RawMessage, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

func (c *memoCache) put(key string, body json.RawMessage) {
	c.entries[key] = cacheEntry{body: body, fetchedAt: c.now()}
}
