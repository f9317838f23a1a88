package gesture

import (
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Key names handled by the engine, matching the DOM-style names callers
// already produce.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// KeyEvent is the entire keyboard surface the engine depends on. Any input
// layer can satisfy it: a Key name, modifier flags, and a PreventDefault
// hook invoked when the engine consumes the event.
type KeyEvent struct {
	Key   string
	Shift bool
	Alt   bool
	Ctrl  bool
	Meta  bool

	// PreventDefault suppresses the caller's native handling (scrolling).
	// May be nil.
	PreventDefault func()
}

// HandleKey nudges the current selection by whole grid units: ArrowRight
// forward, ArrowLeft back. Shift scales the step to a week on a day grid and
// a day on an hour grid. The commit happens immediately; there is no
// begin/update/complete cycle. Unhandled keys and non-Idle phases are no-ops.
func (e *Engine) HandleKey(ev KeyEvent) error {
	if e.st.Phase != PhaseIdle {
		return nil
	}

	var dir time.Duration
	switch ev.Key {
	case KeyArrowRight:
		dir = 1
	case KeyArrowLeft:
		dir = -1
	default:
		return nil
	}

	if ev.PreventDefault != nil {
		ev.PreventDefault()
	}

	ids := e.sel.IDs()
	if len(ids) == 0 {
		return nil
	}

	prefs := e.store.Snapshot().Preferences
	step := prefs.GridUnit.Duration()
	if ev.Shift {
		switch prefs.GridUnit {
		case domain.UnitHour:
			step *= 24
		default:
			step *= 7
		}
	}

	_, err := e.committer.ShiftItems(ids, dir*step)
	return err
}
