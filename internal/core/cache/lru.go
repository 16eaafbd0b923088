// Package cache provides the in-process memoization of ingredient-search
// responses. Entries live until evicted by capacity pressure; failed lookups
// are cached too (quota conservation) but expire on a short TTL so one
// transient failure cannot poison a key for the process lifetime.
package cache

import (
	"container/list"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity bounds the cache when no capacity is configured.
const DefaultCapacity = 50

type entry struct {
	key       string
	value     any
	negative  bool
	expiresAt time.Time
}

// LRU is a bounded least-recently-used cache. Safe for concurrent use.
type LRU struct {
	Clock func() time.Time

	capacity    int
	negativeTTL time.Duration

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

// NewLRU creates a cache bounded to capacity entries. Negative entries
// (failed or empty lookups) expire after negativeTTL; zero disables expiry.
func NewLRU(capacity int, negativeTTL time.Duration) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity:    capacity,
		negativeTTL: negativeTTL,
		order:       list.New(),
		items:       make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached value for key and marks it most recently used.
func (c *LRU) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if ent.negative && !ent.expiresAt.IsZero() && c.now().After(ent.expiresAt) {
		c.order.Remove(elem)
		delete(c.items, key)
		return nil, false
	}

	c.order.MoveToFront(elem)
	return ent.value, true
}

// Put inserts or updates key, evicting the least recently used entry once
// capacity is exceeded. A negative value records a failed or empty lookup.
func (c *LRU) Put(key string, value any, negative bool) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ent := &entry{key: key, value: value, negative: negative}
	if negative && c.negativeTTL > 0 {
		ent.expiresAt = c.now().Add(c.negativeTTL)
	}

	if elem, ok := c.items[key]; ok {
		elem.Value = ent
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(ent)
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len returns the current number of entries.
func (c *LRU) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU) now() time.Time {
	if c != nil && c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// SearchKey builds the canonical cache key for an ingredient search:
// ingredients trimmed, lowercased, deduplicated and sorted, joined with the
// result-count limit and diet filters so equivalent inputs share an entry.
func SearchKey(ingredients []string, maxRecipes int, diet []string) string {
	normalized := normalizeSet(ingredients)

	var sb strings.Builder
	sb.WriteString(strings.Join(normalized, ","))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(maxRecipes))
	if filters := normalizeSet(diet); len(filters) > 0 {
		sb.WriteByte('|')
		sb.WriteString(strings.Join(filters, ","))
	}
	return sb.String()
}

func normalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		item := strings.ToLower(strings.TrimSpace(value))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}
