// Package commit applies resolved gesture deltas to the snapshot store.
// Its functions are the only entry points allowed to mutate item date
// fields or the dependency list.
package commit

import (
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/store"
)

// Committer turns resolved deltas into atomic snapshot swaps. Unknown item
// ids degrade to no-ops; interval inversion is clamped to zero length before
// it can reach the snapshot.
type Committer struct {
	store *store.Store
	obs   Observer
	now   func() time.Time
}

func NewCommitter(s *store.Store, obs Observer) *Committer {
	if obs == nil {
		obs = NoopObserver{}
	}
	return &Committer{store: s, obs: obs, now: time.Now}
}

// ShiftItems moves every named item by delta, duration preserved. Ids not
// present in the snapshot are skipped.
func (c *Committer) ShiftItems(ids []string, delta time.Duration) (domain.Snapshot, error) {
	started := c.now()
	snap, err := c.store.Apply(func(s *domain.Snapshot) error {
		for _, id := range ids {
			idx := s.ItemIndex(id)
			if idx < 0 {
				continue
			}
			s.Items[idx] = s.Items[idx].Shifted(delta)
		}
		s.LastUpdated = c.now().UTC()
		return nil
	})
	c.observe("shift_items", ids, delta, started, err)
	return snap, err
}

// ShiftEdge moves one edge of a single item by delta, clamped so the
// interval never inverts. Resizing a milestone-kind item is a no-op.
func (c *Committer) ShiftEdge(id string, edge domain.Edge, delta time.Duration) (domain.Snapshot, error) {
	started := c.now()
	snap, err := c.store.Apply(func(s *domain.Snapshot) error {
		idx := s.ItemIndex(id)
		if idx < 0 || s.Items[idx].Kind == domain.KindMilestone {
			return nil
		}
		s.Items[idx] = s.Items[idx].EdgeShifted(edge, delta)
		s.LastUpdated = c.now().UTC()
		return nil
	})
	c.observe("shift_edge", []string{id}, delta, started, err)
	return snap, err
}

// AddDependency records a directed edge from → to. Self-links, unknown
// endpoints, and duplicates degrade to no-ops.
func (c *Committer) AddDependency(fromID, toID string) (domain.Snapshot, error) {
	started := c.now()
	snap, err := c.store.Apply(func(s *domain.Snapshot) error {
		if fromID == toID || s.HasDependency(fromID, toID) {
			return nil
		}
		if s.ItemIndex(fromID) < 0 || s.ItemIndex(toID) < 0 {
			return nil
		}
		s.Dependencies = append(s.Dependencies, domain.Dependency{FromID: fromID, ToID: toID})
		s.LastUpdated = c.now().UTC()
		return nil
	})
	c.observe("add_dependency", []string{fromID, toID}, 0, started, err)
	return snap, err
}

// RemoveDependency deletes the edge from → to if it exists.
func (c *Committer) RemoveDependency(fromID, toID string) (domain.Snapshot, error) {
	started := c.now()
	snap, err := c.store.Apply(func(s *domain.Snapshot) error {
		for i, d := range s.Dependencies {
			if d.FromID == fromID && d.ToID == toID {
				s.Dependencies = append(s.Dependencies[:i:i], s.Dependencies[i+1:]...)
				s.LastUpdated = c.now().UTC()
				return nil
			}
		}
		return nil
	})
	c.observe("remove_dependency", []string{fromID, toID}, 0, started, err)
	return snap, err
}

func (c *Committer) observe(op string, ids []string, delta time.Duration, started time.Time, err error) {
	c.obs.ObserveCommit(CommitEvent{
		Op:       op,
		ItemIDs:  ids,
		Delta:    delta,
		Duration: c.now().Sub(started),
		Err:      err,
	})
}
