package snapshot

import (
	"errors"
	"sync"

	"PriceProphet/internal/model"
)

// ErrNotReady indicates no snapshot has been published yet. Get fails fast
// rather than blocking; callers surface the condition to their own clients.
var ErrNotReady = errors.New("no forecast published yet")

// Cache holds the latest published Snapshot. The value is swapped whole
// under the lock and never mutated afterwards, so readers either see the
// prior snapshot or the next one — never a mix.
type Cache struct {
	mu      sync.RWMutex
	current *model.Snapshot
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the current snapshot, or ErrNotReady before the first Replace.
func (c *Cache) Get() (*model.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, ErrNotReady
	}
	return c.current, nil
}

// Replace atomically installs a new snapshot.
func (c *Cache) Replace(snap *model.Snapshot) {
	c.mu.Lock()
	c.current = snap
	c.mu.Unlock()
}
