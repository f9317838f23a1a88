package testutil

import (
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Day0 is the fixed origin used by snapshot fixtures: all day offsets count
// from here.
var Day0 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// ItemSpanningDays builds a task item spanning [startDay, endDay) from Day0.
func ItemSpanningDays(id, name, groupID string, startDay, endDay int) domain.Item {
	it := domain.Item{
		ID:      id,
		Name:    name,
		Kind:    domain.KindTask,
		GroupID: groupID,
		Start:   Day0.AddDate(0, 0, startDay),
		End:     Day0.AddDate(0, 0, endDay),
	}
	it.SyncDuration()
	return it
}

// SnapshotOption mutates a fixture snapshot before it is returned.
type SnapshotOption func(*domain.Snapshot)

func WithGroups(groups ...domain.Group) SnapshotOption {
	return func(s *domain.Snapshot) { s.Groups = groups }
}

func WithDependencies(deps ...domain.Dependency) SnapshotOption {
	return func(s *domain.Snapshot) { s.Dependencies = deps }
}

func WithPreferences(prefs domain.Preferences) SnapshotOption {
	return func(s *domain.Snapshot) { s.Preferences = prefs }
}

// NewSnapshot builds a snapshot fixture around the given items. Defaults: a
// single group "g-1", day grid at 120 px/unit.
func NewSnapshot(items []domain.Item, opts ...SnapshotOption) domain.Snapshot {
	prefs := domain.DefaultPreferences()
	prefs.PixelsPerUnit = 120

	snap := domain.Snapshot{
		ProjectID:   "proj-test",
		Items:       items,
		Groups:      []domain.Group{{ID: "g-1", Name: "Group One", OrderIndex: 0}},
		Preferences: prefs,
		Meta:        map[string]string{"name": "Test Plan"},
		LastUpdated: Day0,
	}
	for _, opt := range opts {
		opt(&snap)
	}
	return snap
}

// TwoItemSnapshot is the canonical two-task fixture: item-1 spans day 0–3,
// item-2 spans day 5–8, both in group g-1.
func TwoItemSnapshot() domain.Snapshot {
	return NewSnapshot([]domain.Item{
		ItemSpanningDays("item-1", "First", "g-1", 0, 3),
		ItemSpanningDays("item-2", "Second", "g-1", 5, 8),
	})
}
