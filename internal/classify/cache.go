package classify

import (
	"container/list"
	"sync"

	"github.com/Gabryew/boas-noticias/internal/news"
)

// DefaultCacheSize bounds the classification cache. Entries are cheap
// but the key is full normalized article text, so an unbounded map grows
// without limit over a long-lived process.
const DefaultCacheSize = 10000

// Cache memoizes classification results keyed by normalized text.
// Callers check it before invoking a strategy and populate it after, so
// equivalent texts across feeds share one decision and one external
// call. Eviction is LRU once the configured bound is reached.
type Cache struct {
	mu      sync.Mutex
	max     int
	order   *list.List
	entries map[string]*list.Element
}

type cacheEntry struct {
	key   string
	label news.Label
}

// NewCache creates a cache holding at most max entries.
func NewCache(max int) *Cache {
	if max <= 0 {
		max = DefaultCacheSize
	}
	return &Cache{
		max:     max,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

// Get returns the cached label for the normalized text, if present.
func (c *Cache) Get(text string) (news.Label, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[text]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).label, true
}

// Put records the label for the normalized text, evicting the least
// recently used entry at capacity. Concurrent puts for the same text are
// idempotent since the same text always computes the same label.
func (c *Cache) Put(text string, label news.Label) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[text]; ok {
		el.Value.(*cacheEntry).label = label
		c.order.MoveToFront(el)
		return
	}

	c.entries[text] = c.order.PushFront(&cacheEntry{key: text, label: label})

	if c.order.Len() > c.max {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
