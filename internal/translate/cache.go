// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pdiddy/papers-list/internal/affiliation"
)

// Cached memoizes another translator. The same affiliation tends to appear
// on many papers of one query.
type Cached struct {
	next  affiliation.Translator
	cache *gocache.Cache
}

// NewCached wraps next with an in-memory cache whose entries expire after ttl.
func NewCached(next affiliation.Translator, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Translate returns the cached translation of text, computing it on a miss.
// Results obtained after ctx is done are returned but not cached.
func (c *Cached) Translate(ctx context.Context, text string) string {
	if val, found := c.cache.Get(text); found {
		return val.(string)
	}
	out := c.next.Translate(ctx, text)
	if ctx.Err() != nil {
		// Likely an untranslated fallback; a later call may succeed.
		return out
	}
	c.cache.SetDefault(text, out)
	return out
}

// Len returns the number of cached entries.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}
