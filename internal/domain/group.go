package domain

// Group is a named band of timeline rows. Groups nest via ParentID; parent
// references must stay acyclic (re-validated on every snapshot swap).
type Group struct {
	ID         string
	Name       string
	ParentID   *string
	OrderIndex int
}
