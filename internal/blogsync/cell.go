package blogsync

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/folio/internal/actor"
	"golang.org/x/sync/singleflight"
)

// PostsCell caches the "all posts" query. Readers share one value; only
// Invalidate (called by the mutations) marks it stale.
type PostsCell struct {
	mu         sync.Mutex
	posts      []actor.BlogPost
	valid      bool
	generation uint64
	group      singleflight.Group
}

// Generation increases by one on every invalidation.
func (c *PostsCell) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Valid reports whether the next read is served from memory.
func (c *PostsCell) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid
}

// Invalidate marks the cached value stale so the next read refetches.
func (c *PostsCell) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.posts = nil
	c.generation++
	c.mu.Unlock()
}

// Peek returns the cached posts without fetching.
func (c *PostsCell) Peek() ([]actor.BlogPost, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return nil, false
	}
	return slices.Clone(c.posts), true
}

// sharedFetchTimeout bounds a fetch that outlives the caller that started it.
const sharedFetchTimeout = 30 * time.Second

// Load returns the cached posts or runs fetch. Concurrent loads of the same
// generation share one fetch. A result that arrives after an invalidation is
// returned to its callers but not stored.
//
// The shared fetch is detached from the cancellation of whichever caller
// started it; a caller whose ctx ends stops waiting and gets ctx.Err() while
// the others still receive the result.
func (c *PostsCell) Load(ctx context.Context, fetch func(context.Context) ([]actor.BlogPost, error)) ([]actor.BlogPost, error) {
	if posts, ok := c.Peek(); ok {
		return posts, nil
	}

	started := c.Generation()
	ch := c.group.DoChan(strconv.FormatUint(started, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		posts, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		if posts == nil {
			posts = []actor.BlogPost{}
		}

		c.mu.Lock()
		if c.generation == started {
			c.posts = posts
			c.valid = true
		}
		c.mu.Unlock()
		return posts, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]actor.BlogPost)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
