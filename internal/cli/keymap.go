package cli

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	ExtendUp     key.Binding
	ExtendDown   key.Binding
	ToggleSelect key.Binding

	NudgeLeft  key.Binding
	NudgeRight key.Binding

	Grab        key.Binding
	ResizeEnd   key.Binding
	ResizeStart key.Binding
	Link        key.Binding
	DragLeft    key.Binding
	DragRight   key.Binding
	Commit      key.Binding
	Cancel      key.Binding

	Edit    key.Binding
	Save    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		ExtendUp:     key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑", "extend selection up")),
		ExtendDown:   key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓", "extend selection down")),
		ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),

		NudgeLeft:  key.NewBinding(key.WithKeys("left", "shift+left"), key.WithHelp("←", "nudge back")),
		NudgeRight: key.NewBinding(key.WithKeys("right", "shift+right"), key.WithHelp("→", "nudge forward")),

		Grab:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab (drag)")),
		ResizeEnd:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resize end")),
		ResizeStart: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "resize start")),
		Link:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		DragLeft:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "pull left")),
		DragRight:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "pull right")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit item")),
		Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Refresh: key.NewBinding(key.WithKeys("f5", "ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
