// Package rowmodel derives the render-oriented row projection from a
// snapshot. Derivation is a pure function: same snapshot and preferences in,
// structurally identical rows out. Rows are never mutated or persisted.
package rowmodel

import (
	"sort"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Row is one renderable schedule row.
type Row struct {
	ItemID  string
	GroupID string
	// Index is the row's position in the derived order.
	Index int
	// Depth is the nesting depth of the owning group chain.
	Depth int
	// Lane is the swimlane assignment (always 0 unless swimlanes are on).
	Lane int
}

// Derive computes the ordered row projection. An empty snapshot yields an
// empty row list.
func Derive(snap domain.Snapshot, prefs domain.Preferences) []Row {
	if len(snap.Items) == 0 {
		return nil
	}

	items := append([]domain.Item(nil), snap.Items...)
	sortItems(items, prefs.Sort)

	var ordered []domain.Item
	depths := make(map[string]int) // group id -> nesting depth

	if prefs.GroupBy == domain.GroupByGroup {
		ordered = orderByGroup(snap, items, depths)
	} else {
		ordered = items
	}

	rows := make([]Row, len(ordered))
	for i, it := range ordered {
		rows[i] = Row{
			ItemID:  it.ID,
			GroupID: it.GroupID,
			Index:   i,
			Depth:   depths[it.GroupID],
			Lane:    lane(it, prefs),
		}
	}
	return rows
}

func lane(it domain.Item, prefs domain.Preferences) int {
	if !prefs.Swimlanes {
		return 0
	}
	switch it.Kind {
	case domain.KindMilestone:
		return 1
	case domain.KindSummary:
		return 2
	default:
		return 0
	}
}

// sortItems orders items by the configured mode, with id as the final
// tiebreak so the output is stable across calls.
func sortItems(items []domain.Item, mode domain.SortMode) {
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		switch mode {
		case domain.SortByName:
			if x.Name != y.Name {
				return x.Name < y.Name
			}
		default:
			if !x.Start.Equal(y.Start) {
				return x.Start.Before(y.Start)
			}
		}
		return x.ID < y.ID
	})
}

// orderByGroup flattens the group tree depth-first by order index and emits
// each group's items in turn. Items whose group is unknown trail the list.
func orderByGroup(snap domain.Snapshot, items []domain.Item, depths map[string]int) []domain.Item {
	byParent := make(map[string][]domain.Group)
	known := make(map[string]bool, len(snap.Groups))
	for _, g := range snap.Groups {
		known[g.ID] = true
		key := ""
		if g.ParentID != nil {
			key = *g.ParentID
		}
		byParent[key] = append(byParent[key], g)
	}
	for _, siblings := range byParent {
		sort.SliceStable(siblings, func(a, b int) bool {
			if siblings[a].OrderIndex != siblings[b].OrderIndex {
				return siblings[a].OrderIndex < siblings[b].OrderIndex
			}
			return siblings[a].ID < siblings[b].ID
		})
	}

	byGroup := make(map[string][]domain.Item)
	for _, it := range items {
		key := it.GroupID
		if !known[key] {
			key = ""
		}
		byGroup[key] = append(byGroup[key], it)
	}

	var ordered []domain.Item
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, g := range byParent[parent] {
			depths[g.ID] = depth
			ordered = append(ordered, byGroup[g.ID]...)
			walk(g.ID, depth+1)
		}
	}
	walk("", 0)

	// Ungrouped or dangling items come last, at depth 0.
	ordered = append(ordered, byGroup[""]...)
	return ordered
}
