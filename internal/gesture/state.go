package gesture

import (
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Phase is the discriminant of the gesture state machine.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseDragging Phase = "dragging"
	PhaseResizing Phase = "resizing"
	PhaseLinking  Phase = "linking"
)

// State is the transient gesture value. It exists only between Begin* and
// Complete/Cancel and never touches the canonical snapshot; which fields are
// meaningful depends on Phase.
type State struct {
	Phase Phase

	// TargetIDs are the items moved together by a drag (the whole selection
	// when the grabbed item is part of a multi-select).
	TargetIDs []string

	// ItemID and Edge identify the resize target.
	ItemID string
	Edge   domain.Edge

	// FromID is the pending dependency source while linking.
	FromID string

	// DeltaPixels is the cumulative pointer offset since the gesture began;
	// Pending is the whole-grid-unit calendar delta it maps to.
	DeltaPixels float64
	Pending     time.Duration
}

func idleState() State { return State{Phase: PhaseIdle} }
