// Package selection tracks which timeline items are currently selected and
// which item the user acted on last (the anchor).
package selection

import "sort"

// Mode controls how Select treats the existing selection.
type Mode string

const (
	// Replace clears the prior selection and selects only the given id.
	Replace Mode = "replace"
	// Add toggles the given id's membership without disturbing others.
	Add Mode = "add"
)

// Manager holds the selection set. Unknown ids are not validated here; the
// consuming layer degrades them to no-ops.
type Manager struct {
	ids    map[string]struct{}
	anchor string
}

func NewManager() *Manager {
	return &Manager{ids: make(map[string]struct{})}
}

// Select updates the selection per the given mode and moves the anchor to id.
// Toggling an id off under Add clears the anchor if it pointed at that id.
func (m *Manager) Select(id string, mode Mode) {
	switch mode {
	case Add:
		if _, ok := m.ids[id]; ok {
			delete(m.ids, id)
			if m.anchor == id {
				m.anchor = ""
			}
			return
		}
		m.ids[id] = struct{}{}
	default:
		m.ids = map[string]struct{}{id: {}}
	}
	m.anchor = id
}

// Contains reports whether id is selected.
func (m *Manager) Contains(id string) bool {
	_, ok := m.ids[id]
	return ok
}

// IDs returns the selected ids in deterministic (sorted) order.
func (m *Manager) IDs() []string {
	out := make([]string, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Anchor returns the most recently acted-on id, or "".
func (m *Manager) Anchor() string { return m.anchor }

func (m *Manager) Len() int { return len(m.ids) }

// Clear empties the selection. Called by the surrounding context on
// navigation, not by the engine itself.
func (m *Manager) Clear() {
	m.ids = make(map[string]struct{})
	m.anchor = ""
}
