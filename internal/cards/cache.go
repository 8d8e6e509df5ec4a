package cards

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// CachedLookup wraps a Lookup with an in-memory LRU cache keyed by the
// reference that was resolved. Negative results are not cached so a transient
// failure does not poison later resolutions.
type CachedLookup struct {
	inner Lookup
	cache *lru.Cache
}

// DefaultCacheSize bounds the cache when no size is given.
const DefaultCacheSize = 4096

// NewCachedLookup builds a caching decorator around inner. A size of 0 uses
// DefaultCacheSize.
func NewCachedLookup(inner Lookup, size int) (*CachedLookup, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create lookup cache: %w", err)
	}
	return &CachedLookup{inner: inner, cache: cache}, nil
}

func (l *CachedLookup) resolve(key string, fetch func() (*Card, error)) (*Card, error) {
	if v, ok := l.cache.Get(key); ok {
		return v.(*Card), nil
	}
	card, err := fetch()
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, card)
	return card, nil
}

// ByCollector implements Lookup.
func (l *CachedLookup) ByCollector(ctx context.Context, setCode, collectorNumber string) (*Card, error) {
	return l.resolve("cn:"+setCode+"/"+collectorNumber, func() (*Card, error) {
		return l.inner.ByCollector(ctx, setCode, collectorNumber)
	})
}

// ByName implements Lookup.
func (l *CachedLookup) ByName(ctx context.Context, name string) (*Card, error) {
	return l.resolve("name:"+name, func() (*Card, error) {
		return l.inner.ByName(ctx, name)
	})
}

// ByForeignName implements Lookup.
func (l *CachedLookup) ByForeignName(ctx context.Context, name string) (*Card, error) {
	return l.resolve("foreign:"+name, func() (*Card, error) {
		return l.inner.ByForeignName(ctx, name)
	})
}

// ByScryfallID implements Lookup.
func (l *CachedLookup) ByScryfallID(ctx context.Context, id string) (*Card, error) {
	return l.resolve("sid:"+id, func() (*Card, error) {
		return l.inner.ByScryfallID(ctx, id)
	})
}

// ByOracleID implements Lookup.
func (l *CachedLookup) ByOracleID(ctx context.Context, id string) (*Card, error) {
	return l.resolve("oid:"+id, func() (*Card, error) {
		return l.inner.ByOracleID(ctx, id)
	})
}

// ByArenaID implements Lookup.
func (l *CachedLookup) ByArenaID(ctx context.Context, id int) (*Card, error) {
	return l.resolve(fmt.Sprintf("aid:%d", id), func() (*Card, error) {
		return l.inner.ByArenaID(ctx, id)
	})
}

// ByMTGOID implements Lookup.
func (l *CachedLookup) ByMTGOID(ctx context.Context, id int) (*Card, error) {
	return l.resolve(fmt.Sprintf("mid:%d", id), func() (*Card, error) {
		return l.inner.ByMTGOID(ctx, id)
	})
}
