package postings

import (
	"fmt"

	"fts/internal/cache"
	"fts/internal/common"
	"fts/internal/metrics"
)

// CachedFile wraps a File with an LRU cache of decoded Records, keyed by
// primary key. Callers that Find the same primary keys repeatedly are
// served from the cache instead of re-walking the varint stream for
// keys that keep coming back. FindStream is not cached.
type CachedFile struct {
	f   *File
	lru *cache.LruCache
	m   *metrics.Metrics
}

// NewCachedFile builds a CachedFile over f with room for capacity decoded
// records. A miss decodes through f.Find and is populated transparently;
// an eviction simply drops the decoded Record, which is always safe to
// recompute.
func NewCachedFile(f *File, capacity int64) *CachedFile {
	cf := &CachedFile{f: f}
	cf.lru = cache.NewLruCache(common.Max(capacity, 1), cf.onMiss, nil)
	return cf
}

// WithMetrics attaches collectors that count decode cache hits/misses.
func (cf *CachedFile) WithMetrics(m *metrics.Metrics) *CachedFile {
	cf.m = m
	return cf
}

func (cf *CachedFile) onMiss(key string) interface{} {
	var primaryKey uint64
	fmt.Sscanf(key, "%d", &primaryKey)
	rec, err := cf.f.Find(primaryKey)
	if err != nil {
		return nil
	}
	return rec
}

// Find decodes primaryKey's record, serving from cache when present.
func (cf *CachedFile) Find(primaryKey uint64) (*Record, error) {
	key := fmt.Sprintf("%d", primaryKey)
	hit := cf.lru.Contains(key)
	if cf.m != nil {
		if hit {
			cf.m.DecodeCacheHitsTotal.Inc()
		} else {
			cf.m.DecodeCacheMissesTotal.Inc()
		}
	}
	if v, ok := cf.lru.Get(key); ok {
		if rec, ok := v.(*Record); ok {
			return rec, nil
		}
	}
	return cf.f.Find(primaryKey)
}

// FindStream bypasses the decode cache: streaming consumers (the
// ranker's scoring kernel, build.TermStats) walk each record once and
// gain nothing from caching it.
func (cf *CachedFile) FindStream(primaryKey uint64) (*Stream, bool, error) {
	return cf.f.FindStream(primaryKey)
}

// NumKeys delegates to the underlying File.
func (cf *CachedFile) NumKeys() int {
	return cf.f.NumKeys()
}

// Close clears the cache and closes the underlying File.
func (cf *CachedFile) Close() error {
	cf.lru.Clear()
	return cf.f.Close()
}
