package frameless

import "github.com/1broseidon/frameless/internal/geometry"

// Phase is the interaction phase implied by a State.
type Phase int

const (
	// PhaseIdle means no button is held and the pointer is not on a border.
	PhaseIdle Phase = iota
	// PhaseHovering means the pointer rests on a border band; only the cursor changes.
	PhaseHovering
	// PhasePressed means the button is held inside a window that may not be moved there.
	PhasePressed
	// PhaseMoving means the window follows the pointer.
	PhaseMoving
	// PhaseResizing means the hovered edge follows the pointer.
	PhaseResizing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHovering:
		return "hovering"
	case PhasePressed:
		return "pressed"
	case PhaseMoving:
		return "moving"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// State is the per-window interaction state. Only the dispatcher writes it.
type State struct {
	Direction     geometry.Direction
	ButtonPressed bool
	// Dragging is set when a press started a move; DragOffset is only
	// meaningful while it is true.
	Dragging   bool
	DragOffset geometry.Point

	// Cursor override bookkeeping: whether this window currently holds the
	// process-wide override, and with which shape.
	CursorOverrideActive bool
	OverrideShape        geometry.CursorShape

	// Capability flags as carried by the most recent event.
	ResizeEnabled bool
	MoveEnabled   bool

	BorderThickness int

	// NativeGesture is set while the platform window manager owns the
	// current move/resize.
	NativeGesture bool
}

// NewState creates an idle state with the given hit-test margin. Non-positive
// margins fall back to geometry.DefaultBorderThickness.
func NewState(border int) State {
	if border <= 0 {
		border = geometry.DefaultBorderThickness
	}
	return State{
		Direction:       geometry.None,
		ResizeEnabled:   true,
		MoveEnabled:     true,
		BorderThickness: border,
	}
}

// Phase derives the interaction phase.
func (s State) Phase() Phase {
	switch {
	case !s.ButtonPressed && s.Direction == geometry.None:
		return PhaseIdle
	case !s.ButtonPressed:
		return PhaseHovering
	case s.Direction != geometry.None:
		return PhaseResizing
	case s.Dragging:
		return PhaseMoving
	default:
		return PhasePressed
	}
}

// resetGesture returns the state to idle. Cursor bookkeeping is left to the
// caller, which must issue the matching clear command.
func (s *State) resetGesture() {
	s.Direction = geometry.None
	s.ButtonPressed = false
	s.Dragging = false
	s.DragOffset = geometry.Point{}
	s.NativeGesture = false
}
