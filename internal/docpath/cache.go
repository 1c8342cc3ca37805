package docpath

import "docshape/internal/cache"

// Cache memoizes Parse results keyed by path string. Parse errors are not
// cached. Safe for concurrent use.
type Cache struct {
	paths *cache.Cache[Path]
}

// NewCache creates a path cache.
func NewCache(opts cache.Options) (*Cache, error) {
	c, err := cache.New[Path](opts)
	if err != nil {
		return nil, err
	}

	return &Cache{paths: c}, nil
}

// Parse returns the cached Path for s, parsing it on first use.
func (c *Cache) Parse(s string) (Path, error) {
	return c.paths.GetOrLoad(s, func() (Path, error) {
		return Parse(s)
	})
}

// Stats returns cache counters.
func (c *Cache) Stats() cache.Stats {
	return c.paths.Stats()
}
