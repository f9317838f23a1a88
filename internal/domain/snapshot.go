package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

// Snapshot is the complete, canonical in-memory schedule for one project.
// Exactly one snapshot is canonical at a time; mutations replace it
// atomically as a whole value, so readers never observe a partial update.
type Snapshot struct {
	ProjectID string

	// Revision is bumped by the store on every swap and serves as the
	// snapshot's identity key for derived caches.
	Revision int64

	Items        []Item
	Groups       []Group
	Dependencies []Dependency
	Milestones   []Milestone
	Baselines    []Baseline

	// Auxiliary carries the schedule payloads the engine never interprets
	// (constraints, calendars, overlays, workload entries, risk scores,
	// comments, permissions, presence), keyed by payload name. They ride
	// through clone, replace, and save untouched, so a committed gesture
	// never drops them.
	Auxiliary map[string]json.RawMessage

	Preferences Preferences
	Meta        map[string]string
	LastUpdated time.Time
}

// Item returns the item with the given id.
func (s Snapshot) Item(id string) (Item, bool) {
	if idx := s.ItemIndex(id); idx >= 0 {
		return s.Items[idx], true
	}
	return Item{}, false
}

// ItemIndex returns the position of the item with the given id, or -1.
func (s Snapshot) ItemIndex(id string) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Group returns the group with the given id.
func (s Snapshot) Group(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// HasDependency reports whether an edge from → to already exists.
func (s Snapshot) HasDependency(from, to string) bool {
	for _, d := range s.Dependencies {
		if d.FromID == from && d.ToID == to {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Mutations are computed against a clone and
// swapped in wholesale, keeping the canonical snapshot immutable to readers.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Items = append([]Item(nil), s.Items...)
	out.Groups = append([]Group(nil), s.Groups...)
	out.Dependencies = append([]Dependency(nil), s.Dependencies...)
	out.Milestones = append([]Milestone(nil), s.Milestones...)
	out.Baselines = append([]Baseline(nil), s.Baselines...)
	if s.Meta != nil {
		out.Meta = make(map[string]string, len(s.Meta))
		for k, v := range s.Meta {
			out.Meta[k] = v
		}
	}
	if s.Auxiliary != nil {
		out.Auxiliary = make(map[string]json.RawMessage, len(s.Auxiliary))
		for k, v := range s.Auxiliary {
			out.Auxiliary[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Validate checks the snapshot's structural invariants: every item interval
// is ordered, dependency endpoints exist and are distinct, and group parent
// references resolve without cycles.
func (s *Snapshot) Validate() error {
	ids := make(map[string]bool, len(s.Items))
	for i := range s.Items {
		it := &s.Items[i]
		if it.End.Before(it.Start) {
			return fmt.Errorf("item %s: start after end", it.ID)
		}
		ids[it.ID] = true
	}

	for _, d := range s.Dependencies {
		if d.FromID == d.ToID {
			return fmt.Errorf("dependency %s: self-referential", d.FromID)
		}
		if !ids[d.FromID] || !ids[d.ToID] {
			return fmt.Errorf("dependency %s -> %s: unknown item", d.FromID, d.ToID)
		}
	}

	return s.validateGroupTree()
}

func (s *Snapshot) validateGroupTree() error {
	parents := make(map[string]string, len(s.Groups))
	known := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		known[g.ID] = true
		if g.ParentID != nil {
			parents[g.ID] = *g.ParentID
		}
	}
	for id, parent := range parents {
		if !known[parent] {
			return fmt.Errorf("group %s: unknown parent %s", id, parent)
		}
	}

	// Walk each parent chain; a chain longer than the group count is a cycle.
	for id := range parents {
		cur := id
		for steps := 0; ; steps++ {
			next, ok := parents[cur]
			if !ok {
				break
			}
			if steps > len(s.Groups) {
				return fmt.Errorf("group %s: parent cycle", id)
			}
			cur = next
		}
	}
	return nil
}
