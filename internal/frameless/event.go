package frameless

import "github.com/1broseidon/frameless/internal/geometry"

// EventKind tags the variant held by an Event.
type EventKind int

const (
	EventFocusIn EventKind = iota
	EventHover
	EventPress
	EventMove
	EventRelease
	EventLeave
	// EventNativeDeclined is posted by the UI side when the platform refused
	// to run a native move/resize, handing the gesture back to the engine.
	EventNativeDeclined
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventFocusIn:
		return "focus-in"
	case EventHover:
		return "hover"
	case EventPress:
		return "press"
	case EventMove:
		return "move"
	case EventRelease:
		return "release"
	case EventLeave:
		return "leave"
	case EventNativeDeclined:
		return "native-declined"
	default:
		return "unknown"
	}
}

// Event is an immutable pointer/focus record created on the UI thread and
// consumed exactly once by the dispatcher. Which fields are meaningful depends
// on Kind:
//
//	FocusIn          ResizeEnabled
//	Hover            Point, ResizeEnabled
//	Press            Point, MoveEnabled
//	Move             Point, ResizeEnabled, MoveEnabled
//	Release, Leave   -
//	NativeDeclined   -
type Event struct {
	Kind          EventKind
	Point         geometry.Point
	ResizeEnabled bool
	MoveEnabled   bool

	target *Controller
}

// Target returns the controller the event belongs to.
func (e Event) Target() *Controller {
	return e.target
}
