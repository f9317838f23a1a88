package domain

// Preferences are the view settings that shape both gesture interpretation
// (grid unit, zoom) and row derivation (grouping, sort, swimlanes).
type Preferences struct {
	// GridUnit is the snap grid for all gesture-derived date shifts.
	GridUnit GridUnit
	// PixelsPerUnit is the horizontal zoom: screen pixels spanned by one
	// grid unit. Always positive.
	PixelsPerUnit float64

	GroupBy   GroupBy
	Sort      SortMode
	Swimlanes bool
}

func DefaultPreferences() Preferences {
	return Preferences{
		GridUnit:      UnitDay,
		PixelsPerUnit: 40,
		GroupBy:       GroupByGroup,
		Sort:          SortByStart,
	}
}
