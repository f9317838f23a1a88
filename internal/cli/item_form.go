package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/evanmahr/ganttline/internal/domain"
)

// openEditForm shows a rename form for the given item. Date fields are
// deliberately absent; those change only through gestures.
func (m ganttModel) openEditForm(itemID string) (tea.Model, tea.Cmd) {
	snap := m.app.Store.Snapshot()
	it, ok := snap.Item(itemID)
	if !ok {
		return m, nil
	}

	name := it.Name
	m.formItem = itemID
	m.formName = &name
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item name").
				Value(m.formName).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return m, m.form.Init()
}

func (m ganttModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		itemID, name := m.formItem, *m.formName
		_, err := m.app.Store.Apply(func(s *domain.Snapshot) error {
			if idx := s.ItemIndex(itemID); idx >= 0 {
				s.Items[idx].Name = name
			}
			return nil
		})
		if err != nil {
			m.status = "rename failed: " + err.Error()
		} else {
			m.status = "renamed"
		}
		m.form = nil
	case huh.StateAborted:
		m.form = nil
		m.status = ""
	}

	return m, cmd
}
