package lint

import (
	"hash/fnv"
	"sync"
)

// Cache memoizes a rule's violation list by document content.
//
// Entries are keyed by an FNV-1a hash of the full content, so any byte
// change, even a single character, bypasses the stale entry. Entries are
// never partially invalidated.
//
// The cache is safe for concurrent use. Critical sections cover only the
// read-or-populate of a single entry; no lock is held across a scan.
//
// Growth is unbounded across distinct contents within one process lifetime,
// which is acceptable for CLI runs. Long-lived callers that need bounded
// memory should call Reset periodically.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64][]Violation
}

// NewCache creates an empty violation cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64][]Violation)}
}

// Get returns the cached violations for content, if present.
func (c *Cache) Get(content []byte) ([]Violation, bool) {
	key := contentHash(content)

	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores the violations computed for content.
func (c *Cache) Put(content []byte, violations []Violation) {
	key := contentHash(content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = violations
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset discards all cached entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64][]Violation)
}

// contentHash computes a fast non-cryptographic hash of content.
func contentHash(content []byte) uint64 {
	h := fnv.New64a()
	h.Write(content) //nolint:errcheck // hash.Hash.Write never fails
	return h.Sum64()
}
