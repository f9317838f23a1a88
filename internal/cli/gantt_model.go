package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/gesture"
	"github.com/evanmahr/ganttline/internal/rowmodel"
	"github.com/evanmahr/ganttline/internal/selection"
)

// refreshedMsg reports the result of an async snapshot refetch.
type refreshedMsg struct{ err error }

// savedMsg reports the result of an async save.
type savedMsg struct{ err error }

// ganttModel is the root bubbletea Model for the timeline view. All gesture
// state lives in the engine; the model only tracks cursor position, the
// accumulated pointer offset it feeds the engine, and transient UI chrome.
type ganttModel struct {
	app  *App
	keys keyMap

	rowCache *rowmodel.Cache
	cursor   int

	// gesturePx is the simulated cumulative pointer offset while a
	// drag/resize gesture is active.
	gesturePx float64

	width  int
	height int
	status string

	form *huh.Form
	// formName is shared with the form input across model copies.
	formName *string
	formItem string

	quitting bool
}

func newGanttModel(app *App) ganttModel {
	return ganttModel{
		app:      app,
		keys:     defaultKeyMap(),
		rowCache: rowmodel.NewCache(),
	}
}

func (m ganttModel) Init() tea.Cmd { return nil }

func (m ganttModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
		} else {
			m.status = "refreshed"
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m ganttModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	rows := m.rows()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.selectCursor(rows)
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		m.selectCursor(rows)
		return m, nil

	case key.Matches(msg, keys.ExtendUp):
		if m.cursor > 0 {
			m.cursor--
		}
		if id := m.cursorItem(rows); id != "" && !m.app.Selection.Contains(id) {
			m.app.Selection.Select(id, selection.Add)
		}
		return m, nil

	case key.Matches(msg, keys.ExtendDown):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		if id := m.cursorItem(rows); id != "" && !m.app.Selection.Contains(id) {
			m.app.Selection.Select(id, selection.Add)
		}
		return m, nil

	case key.Matches(msg, keys.ToggleSelect):
		if id := m.cursorItem(rows); id != "" {
			m.app.Selection.Select(id, selection.Add)
		}
		return m, nil

	case key.Matches(msg, keys.NudgeLeft), key.Matches(msg, keys.NudgeRight):
		if handled := m.nudge(msg); handled {
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, keys.Grab):
		if id := m.cursorItem(rows); id != "" {
			if err := m.app.Engine.BeginDrag(id); err == nil {
				m.gesturePx = 0
				m.status = "dragging — h/l to move, enter to commit, esc to cancel"
			}
		}
		return m, nil

	case key.Matches(msg, keys.ResizeEnd), key.Matches(msg, keys.ResizeStart):
		if id := m.cursorItem(rows); id != "" {
			edge := edgeFor(key.Matches(msg, keys.ResizeStart))
			if err := m.app.Engine.BeginResize(id, edge); err == nil {
				m.gesturePx = 0
				m.status = "resizing " + string(edge) + " — h/l to move, enter to commit, esc to cancel"
			}
		}
		return m, nil

	case key.Matches(msg, keys.Link):
		switch m.app.Engine.State().Phase {
		case gesture.PhaseLinking:
			m.completeLink(rows)
		case gesture.PhaseIdle:
			if id := m.cursorItem(rows); id != "" {
				if err := m.app.Engine.BeginLink(id); err == nil {
					m.status = "linking — move to target, c/enter to connect, esc to cancel"
				}
			}
		}
		return m, nil

	case key.Matches(msg, keys.DragLeft), key.Matches(msg, keys.DragRight):
		m.pointerStep(key.Matches(msg, keys.DragLeft))
		return m, nil

	case key.Matches(msg, keys.Commit):
		switch m.app.Engine.State().Phase {
		case gesture.PhaseLinking:
			m.completeLink(rows)
		default:
			if err := m.app.Engine.Complete(); err != nil {
				m.status = "commit failed: " + err.Error()
			} else {
				m.status = ""
			}
		}
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.app.Engine.Cancel()
		m.gesturePx = 0
		m.status = ""
		return m, nil

	case key.Matches(msg, keys.Edit):
		if id := m.cursorItem(rows); id != "" {
			return m.openEditForm(id)
		}
		return m, nil

	case key.Matches(msg, keys.Save):
		return m, func() tea.Msg {
			return savedMsg{err: m.app.Schedule.Save(context.Background())}
		}

	case key.Matches(msg, keys.Refresh):
		return m, func() tea.Msg {
			return refreshedMsg{err: m.app.Schedule.Refresh(context.Background())}
		}
	}

	return m, nil
}

// nudge adapts a terminal key press onto the engine's keyboard contract and
// reports whether the engine consumed it.
func (m *ganttModel) nudge(msg tea.KeyMsg) bool {
	ev, ok := nudgeEvent(msg)
	if !ok {
		return false
	}
	consumed := false
	ev.PreventDefault = func() { consumed = true }
	if err := m.app.Engine.HandleKey(ev); err != nil {
		m.status = "nudge failed: " + err.Error()
	}
	return consumed
}

// nudgeEvent maps terminal arrow presses to the DOM-style key names the
// engine handles.
func nudgeEvent(msg tea.KeyMsg) (gesture.KeyEvent, bool) {
	switch msg.String() {
	case "left":
		return gesture.KeyEvent{Key: gesture.KeyArrowLeft}, true
	case "right":
		return gesture.KeyEvent{Key: gesture.KeyArrowRight}, true
	case "shift+left":
		return gesture.KeyEvent{Key: gesture.KeyArrowLeft, Shift: true}, true
	case "shift+right":
		return gesture.KeyEvent{Key: gesture.KeyArrowRight, Shift: true}, true
	}
	return gesture.KeyEvent{}, false
}

// pointerStep feeds the active gesture one grid unit's worth of pixels in
// the given direction, mimicking pointer movement.
func (m *ganttModel) pointerStep(leftward bool) {
	prefs := m.app.Store.Snapshot().Preferences
	step := prefs.PixelsPerUnit
	if leftward {
		step = -step
	}
	m.gesturePx += step

	var err error
	switch m.app.Engine.State().Phase {
	case gesture.PhaseDragging:
		err = m.app.Engine.UpdateDrag(m.gesturePx)
	case gesture.PhaseResizing:
		err = m.app.Engine.UpdateResize(m.gesturePx)
	default:
		m.gesturePx = 0
		return
	}
	if err != nil {
		m.status = "gesture failed: " + err.Error()
	}
}

func (m *ganttModel) completeLink(rows []rowmodel.Row) {
	target := m.cursorItem(rows)
	if err := m.app.Engine.CompleteLink(target); err != nil {
		m.status = "link failed: " + err.Error()
		return
	}
	m.status = ""
}

func (m *ganttModel) selectCursor(rows []rowmodel.Row) {
	if id := m.cursorItem(rows); id != "" {
		m.app.Selection.Select(id, selection.Replace)
	}
}

func (m *ganttModel) cursorItem(rows []rowmodel.Row) string {
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor].ItemID
}

func (m *ganttModel) rows() []rowmodel.Row {
	snap := m.app.Store.Snapshot()
	return m.rowCache.Rows(snap, snap.Preferences)
}

func edgeFor(start bool) domain.Edge {
	if start {
		return domain.EdgeStart
	}
	return domain.EdgeEnd
}
