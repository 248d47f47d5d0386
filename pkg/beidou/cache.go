package beidou

import "sync"

// Cache memoizes decode results keyed by code string. It is safe for
// concurrent use by many goroutines, matching the publish-many/read-many
// pattern RangeQuery's worker pool needs when it decodes overlapping
// candidate codes along shared ancestor paths.
type Cache struct {
	m      sync.Map // string -> GeoPoint
	hits   int64
	misses int64
	mu     sync.Mutex // guards hits/misses
}

// NewCache returns an empty, ready-to-use Cache.
func NewCache() *Cache {
	return &Cache{}
}

// GetOrDecode returns the cached GeoPoint for code, computing and
// storing it via decode on a miss.
func (c *Cache) GetOrDecode(code string, decode func(string) (GeoPoint, error)) (GeoPoint, error) {
	if v, ok := c.m.Load(code); ok {
		c.recordHit()
		return v.(GeoPoint), nil
	}
	p, err := decode(code)
	if err != nil {
		return GeoPoint{}, err
	}
	c.m.Store(code, p)
	c.recordMiss()
	return p, nil
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

// CacheStats reports hit/miss counters for a Cache.
type CacheStats struct {
	Hits, Misses int64
}

// Stats returns the cache's current hit/miss counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses}
}
