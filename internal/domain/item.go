package domain

import "time"

// Item is one schedulable bar on the timeline. Date fields are mutated only
// through the commit package; Start ≤ End holds for every committed item.
type Item struct {
	ID      string
	Name    string
	Kind    ItemKind
	GroupID string

	Start time.Time
	End   time.Time

	// DurationMinutes is derived from End − Start and kept consistent by
	// every mutation path.
	DurationMinutes int

	PercentDone float64
}

// SyncDuration recomputes DurationMinutes from the interval.
func (i *Item) SyncDuration() {
	i.DurationMinutes = int(i.End.Sub(i.Start) / time.Minute)
}

// Shifted returns a copy of the item moved by delta, duration preserved.
func (i Item) Shifted(delta time.Duration) Item {
	i.Start = i.Start.Add(delta)
	i.End = i.End.Add(delta)
	i.SyncDuration()
	return i
}

// ClampEdgeShift bounds delta so that moving the given edge by the result
// never inverts the interval. The clamped delta may collapse the item to
// zero length but never past the opposite edge.
func ClampEdgeShift(i Item, edge Edge, delta time.Duration) time.Duration {
	span := i.End.Sub(i.Start)
	switch edge {
	case EdgeStart:
		if delta > span {
			return span
		}
	case EdgeEnd:
		if delta < -span {
			return -span
		}
	}
	return delta
}

// EdgeShifted returns a copy of the item with the given edge moved by delta,
// clamped so Start ≤ End still holds.
func (i Item) EdgeShifted(edge Edge, delta time.Duration) Item {
	delta = ClampEdgeShift(i, edge, delta)
	if edge == EdgeStart {
		i.Start = i.Start.Add(delta)
	} else {
		i.End = i.End.Add(delta)
	}
	i.SyncDuration()
	return i
}
