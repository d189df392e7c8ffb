package layout

import "sync"

// Cache memoizes generated layouts per policy. The zero value is ready to
// use and safe for concurrent use. Returned layouts are shared between
// callers and must be treated as read-only; use Clone before mutating.
type Cache struct {
	mu      sync.Mutex
	layouts map[Policy]*Layout
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the layout for p, generating it on first use.
func (c *Cache) Get(p Policy) (*Layout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.layouts[p]; ok {
		return l, nil
	}
	l, err := Generate(p)
	if err != nil {
		return nil, err
	}
	if c.layouts == nil {
		c.layouts = make(map[Policy]*Layout)
	}
	c.layouts[p] = l
	return l, nil
}

// Len reports how many policies have been generated.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.layouts)
}
