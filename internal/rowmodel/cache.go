package rowmodel

import (
	"sync"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Cache memoizes the last derivation, keyed by snapshot revision and
// preferences.
type Cache struct {
	mu       sync.Mutex
	revision int64
	prefs    domain.Preferences
	rows     []Row
	valid    bool
}

func NewCache() *Cache { return &Cache{} }

// Rows returns the derived rows for the snapshot, recomputing only when the
// snapshot revision or preferences differ from the memoized derivation.
func (c *Cache) Rows(snap domain.Snapshot, prefs domain.Preferences) []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.revision == snap.Revision && c.prefs == prefs {
		return c.rows
	}
	c.rows = Derive(snap, prefs)
	c.revision = snap.Revision
	c.prefs = prefs
	c.valid = true
	return c.rows
}

// Invalidate drops the memoized rows.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
