package fsutil

import "sync"

// ContentCache remembers the last content hash seen per path.
// Safe for concurrent use.
type ContentCache struct {
	mu   sync.Mutex
	seen map[string]*FileInfo
}

// NewContentCache creates an empty cache.
func NewContentCache() *ContentCache {
	return &ContentCache{seen: make(map[string]*FileInfo)}
}

// Update records info and reports whether its content differs from the
// previously recorded content for the same path.
func (c *ContentCache) Update(info *FileInfo) bool {
	if info == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.seen[info.Path]
	c.seen[info.Path] = info
	return !ok || !prev.SameContent(info)
}

// Get returns the last recorded info for path.
func (c *ContentCache) Get(path string) (*FileInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.seen[path]
	return info, ok
}

// Forget drops path from the cache.
func (c *ContentCache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seen, path)
}
