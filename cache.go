package sharecare

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post or image does not exist.
var ErrNotFound = sql.ErrNoRows

// PageCache is an in-memory cache of published posts with TTL.
type PageCache struct {
	mu      sync.RWMutex
	posts   []Post
	bySlug  map[string]int
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl}
}

func (c *PageCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.bySlug = nil
	c.mu.Unlock()
}

func (c *PageCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPages()
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []Post{}
	}
	bySlug := make(map[string]int, len(posts))
	for i, p := range posts {
		bySlug[p.Slug] = i
	}
	c.posts = posts
	c.bySlug = bySlug
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PageCache) ensureLoaded() ([]Post, map[string]int, error) {
	c.mu.RLock()
	if c.valid() {
		posts, bySlug := c.posts, c.bySlug
		c.mu.RUnlock()
		return posts, bySlug, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.posts, c.bySlug, nil
}

// ListPages returns published posts, newest first.
func (c *PageCache) ListPages() ([]Post, error) {
	posts, _, err := c.ensureLoaded()
	return posts, err
}

// GetPage returns a single published post by slug from the cache.
func (c *PageCache) GetPage(slug string) (Post, error) {
	posts, bySlug, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	i, ok := bySlug[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return posts[i], nil
}
