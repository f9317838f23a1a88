package domain

import "time"

// Milestone is a dated marker overlaid on the timeline (release cut,
// deadline). Unlike a KindMilestone item it occupies no row of its own.
type Milestone struct {
	ID   string
	Name string
	Date time.Time
}

// Baseline records an item's originally planned interval so drift can be
// rendered against the current schedule.
type Baseline struct {
	ItemID string
	Start  time.Time
	End    time.Time
}
