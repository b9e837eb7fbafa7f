package snapshot

import (
	"sync"

	"incus-snapshot/src/incusapi"
)

// Cache holds the last known snapshot set per instance. Entries are always
// replaced wholesale, never merged: a successful create/restore/load installs
// the new sequence, and a failed load removes the entry so callers see
// "unknown" rather than stale state.
//
// The cache does not assume any cardinality; it stores whatever sequence the
// server reports, even though the workflow here keeps at most one managed
// snapshot per instance.
//
// Runs against different instances may touch the cache concurrently; runs
// against the same instance are expected to be serialized by the caller.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]incusapi.Snapshot
}

func NewCache() *Cache {
	return &Cache{entries: map[string][]incusapi.Snapshot{}}
}

// Get returns the cached sequence for ref and whether an entry exists.
// The returned slice is a copy.
func (c *Cache) Get(ref InstanceRef) ([]incusapi.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snaps, ok := c.entries[ref.String()]
	if !ok {
		return nil, false
	}
	return append([]incusapi.Snapshot(nil), snaps...), true
}

func (c *Cache) replace(ref InstanceRef, snaps []incusapi.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ref.String()] = append([]incusapi.Snapshot(nil), snaps...)
}

func (c *Cache) clear(ref InstanceRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ref.String())
}
