// Package gesture is the interaction engine: it translates pointer deltas
// and key events into calendar-date mutations through an explicit
// drag/resize/link state machine.
//
// Pointer updates are cheap pure computations against transient state; the
// canonical snapshot is mutated exactly once per gesture, at Complete (or
// immediately for keyboard nudges).
package gesture

import (
	"errors"
	"time"

	"github.com/evanmahr/ganttline/internal/commit"
	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/selection"
	"github.com/evanmahr/ganttline/internal/store"
	"github.com/evanmahr/ganttline/internal/timescale"
)

var (
	// ErrGestureActive is returned when a Begin* call arrives while another
	// gesture is in progress. Callers are expected to serialize gestures.
	ErrGestureActive = errors.New("gesture already in progress")
	// ErrNoGesture is returned when an update or completion call does not
	// match the current phase. An update while Idle is a caller bug, not a
	// state the engine tolerates silently.
	ErrNoGesture = errors.New("no matching gesture in progress")
)

// Engine consumes interaction intents and, on gesture completion, commits
// the resolved delta. Operations referencing unknown item ids degrade to
// no-ops rather than erroring.
type Engine struct {
	store     *store.Store
	committer *commit.Committer
	sel       *selection.Manager
	st        State
}

func NewEngine(s *store.Store, c *commit.Committer, sel *selection.Manager) *Engine {
	return &Engine{store: s, committer: c, sel: sel, st: idleState()}
}

// State returns the current gesture value.
func (e *Engine) State() State { return e.st }

// BeginDrag starts a drag for itemID. If itemID is part of the current
// multi-selection the whole selection drags together by the same delta.
// Unknown ids leave the engine Idle.
func (e *Engine) BeginDrag(itemID string) error {
	if e.st.Phase != PhaseIdle {
		return ErrGestureActive
	}
	snap := e.store.Snapshot()
	if _, ok := snap.Item(itemID); !ok {
		return nil
	}
	targets := []string{itemID}
	if e.sel.Contains(itemID) && e.sel.Len() > 1 {
		targets = e.sel.IDs()
	}
	e.st = State{Phase: PhaseDragging, TargetIDs: targets}
	return nil
}

// UpdateDrag records the cumulative pointer offset since BeginDrag and maps
// it to a whole-grid-unit pending delta. Preview only; nothing is committed.
func (e *Engine) UpdateDrag(deltaPixels float64) error {
	if e.st.Phase != PhaseDragging {
		return ErrNoGesture
	}
	e.st.DeltaPixels = deltaPixels
	e.st.Pending = e.snapDelta(deltaPixels)
	return nil
}

// BeginResize starts a resize of one edge of itemID. Milestone-kind items
// have no resizable span; the engine stays Idle for them, as for unknown ids.
func (e *Engine) BeginResize(itemID string, edge domain.Edge) error {
	if e.st.Phase != PhaseIdle {
		return ErrGestureActive
	}
	snap := e.store.Snapshot()
	it, ok := snap.Item(itemID)
	if !ok || it.Kind == domain.KindMilestone {
		return nil
	}
	e.st = State{Phase: PhaseResizing, ItemID: itemID, Edge: edge}
	return nil
}

// UpdateResize records the cumulative pointer offset since BeginResize. The
// pending delta is stored unclamped; clamping against interval inversion
// happens in the preview and again at commit.
func (e *Engine) UpdateResize(deltaPixels float64) error {
	if e.st.Phase != PhaseResizing {
		return ErrNoGesture
	}
	e.st.DeltaPixels = deltaPixels
	e.st.Pending = e.snapDelta(deltaPixels)
	return nil
}

// BeginLink starts a dependency-link gesture from fromID.
func (e *Engine) BeginLink(fromID string) error {
	if e.st.Phase != PhaseIdle {
		return ErrGestureActive
	}
	snap := e.store.Snapshot()
	if _, ok := snap.Item(fromID); !ok {
		return nil
	}
	e.st = State{Phase: PhaseLinking, FromID: fromID}
	return nil
}

// CompleteLink commits a dependency from the recorded source to toID.
// Self-links and unknown endpoints add nothing. The engine returns to Idle
// either way.
func (e *Engine) CompleteLink(toID string) error {
	if e.st.Phase != PhaseLinking {
		return ErrNoGesture
	}
	fromID := e.st.FromID
	e.st = idleState()
	if toID == fromID {
		return nil
	}
	_, err := e.committer.AddDependency(fromID, toID)
	return err
}

// Complete finishes the active drag or resize, committing the pending delta
// to every affected item. With no pending delta (or no active gesture) it is
// an idempotent no-op; the snapshot is untouched.
func (e *Engine) Complete() error {
	st := e.st
	e.st = idleState()

	if st.Pending == 0 {
		return nil
	}
	switch st.Phase {
	case PhaseDragging:
		_, err := e.committer.ShiftItems(st.TargetIDs, st.Pending)
		return err
	case PhaseResizing:
		_, err := e.committer.ShiftEdge(st.ItemID, st.Edge, st.Pending)
		return err
	default:
		return nil
	}
}

// Cancel discards any pending gesture state without committing, returning
// to Idle with the snapshot unchanged.
func (e *Engine) Cancel() {
	e.st = idleState()
}

// Preview returns the affected items with the pending delta applied, for
// rendering uncommitted gesture state. Resize previews are clamped the same
// way the commit will be. Nil while Idle or Linking.
func (e *Engine) Preview() []domain.Item {
	snap := e.store.Snapshot()
	switch e.st.Phase {
	case PhaseDragging:
		var out []domain.Item
		for _, id := range e.st.TargetIDs {
			if it, ok := snap.Item(id); ok {
				out = append(out, it.Shifted(e.st.Pending))
			}
		}
		return out
	case PhaseResizing:
		// A refresh can swap the item's kind mid-gesture; never preview a
		// resize the committer would discard.
		if it, ok := snap.Item(e.st.ItemID); ok && it.Kind != domain.KindMilestone {
			return []domain.Item{it.EdgeShifted(e.st.Edge, e.st.Pending)}
		}
	}
	return nil
}

// snapDelta converts a pixel offset to a whole-grid-unit duration using the
// snapshot's current view preferences.
func (e *Engine) snapDelta(deltaPixels float64) time.Duration {
	prefs := e.store.Snapshot().Preferences
	return timescale.PixelsToDuration(deltaPixels, prefs.PixelsPerUnit, prefs.GridUnit)
}
