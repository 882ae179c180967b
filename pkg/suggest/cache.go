package suggest

import (
	"math"
	"sync"
)

// RenderCache memoizes candidate conversions. When full it evicts the entry
// with the oldest access tick.
type RenderCache struct {
	rendered    map[string]string
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
	mu          sync.Mutex
}

// NewRenderCache returns a cache holding at most maxEntries renders, or nil
// when maxEntries is not positive.
func NewRenderCache(maxEntries int) *RenderCache {
	if maxEntries <= 0 {
		return nil
	}
	return &RenderCache{
		rendered:   make(map[string]string, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached render of candidate and counts a hit or miss.
func (rc *RenderCache) Get(candidate string) (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out, ok := rc.rendered[candidate]
	if !ok {
		rc.misses++
		return "", false
	}
	rc.hits++
	rc.markAccessed(candidate)
	return out, true
}

// Put stores a render, evicting the least recently used entry when full.
func (rc *RenderCache) Put(candidate, rendered string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.rendered[candidate]; !exists && len(rc.rendered) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.rendered[candidate] = rendered
	rc.markAccessed(candidate)
}

// Len returns the number of cached renders.
func (rc *RenderCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.rendered)
}

// Stats returns entry, capacity, hit and miss counts.
func (rc *RenderCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"renderCacheEntries": len(rc.rendered),
		"maxRenderEntries":   rc.maxEntries,
		"renderCacheHits":    rc.hits,
		"renderCacheMisses":  rc.misses,
	}
}

func (rc *RenderCache) markAccessed(candidate string) {
	rc.accessCount++
	rc.accessTime[candidate] = rc.accessCount
}

func (rc *RenderCache) evictLRU() {
	var oldest string
	var oldestTime int64 = math.MaxInt64

	for candidate, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = candidate
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(rc.rendered, oldest)
		delete(rc.accessTime, oldest)
	}
}
