package domain

import "time"

type ItemKind string

const (
	KindTask      ItemKind = "task"
	KindMilestone ItemKind = "milestone"
	KindSummary   ItemKind = "summary"
)

// Edge identifies which end of an item's interval a resize gesture targets.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// GridUnit is the minimum schedule granularity. All gesture-derived date
// shifts are rounded to whole grid units.
type GridUnit string

const (
	UnitDay  GridUnit = "day"
	UnitHour GridUnit = "hour"
)

// Duration returns the calendar span of one grid unit.
func (u GridUnit) Duration() time.Duration {
	if u == UnitHour {
		return time.Hour
	}
	return 24 * time.Hour
}

type SortMode string

const (
	SortByStart SortMode = "start"
	SortByName  SortMode = "name"
)

type GroupBy string

const (
	GroupByGroup GroupBy = "group"
	GroupByNone  GroupBy = "none"
)
