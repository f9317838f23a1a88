package domain

// Dependency is a directed edge between two items, independent of group
// membership. Dependencies are only ever added or removed, never mutated.
type Dependency struct {
	FromID string
	ToID   string
}
