package inkpress

import (
	"database/sql"
	"sync"
	"time"

	"github.com/kylekorndoerfer/inkpress/content"
)

// ErrNotFound is returned when a requested post or page does not exist.
var ErrNotFound = sql.ErrNoRows

// PostCache is an in-memory cache of published posts, pages and tags with TTL.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.Post
	pages   []content.Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
// Call after SyncDir.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.pages = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return err
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	c.posts = posts
	c.pages = pages
	c.tags = tags
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached content after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]content.Post, []content.Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, pages, tags := c.posts, c.pages, c.tags
		c.mu.RUnlock()
		return posts, pages, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.pages, c.tags, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]content.Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	var filtered []content.Post
	for _, p := range posts {
		if p.HasTag(tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListPages returns published standalone pages.
func (c *PostCache) ListPages() ([]content.Post, error) {
	_, pages, _, err := c.ensureLoaded()
	return pages, err
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, _, tags, err := c.ensureLoaded()
	return tags, err
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	posts, _, _, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}

// GetPage returns a single published page by slug from the cache.
func (c *PostCache) GetPage(slug string) (content.Post, error) {
	_, pages, _, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}
