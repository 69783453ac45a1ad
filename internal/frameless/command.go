package frameless

import "github.com/1broseidon/frameless/internal/geometry"

// CommandKind tags a UI-thread mutation requested by the dispatcher.
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandGeometry
	CommandSetCursor
	CommandClearCursor
	CommandReleaseGrab
	CommandNativeMove
	CommandNativeResize
)

// String returns the string representation of the command kind
func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandGeometry:
		return "geometry"
	case CommandSetCursor:
		return "set-cursor"
	case CommandClearCursor:
		return "clear-cursor"
	case CommandReleaseGrab:
		return "release-grab"
	case CommandNativeMove:
		return "native-move"
	case CommandNativeResize:
		return "native-resize"
	default:
		return "unknown"
	}
}

// Command is a window or cursor mutation that must run on the UI thread.
// Point carries the target top-left for Move and the pointer for the native
// variants; Rect is used by Geometry, Shape by SetCursor and Direction by
// NativeResize.
type Command struct {
	Kind      CommandKind
	Point     geometry.Point
	Rect      geometry.Rect
	Shape     geometry.CursorShape
	Direction geometry.Direction

	target *Controller
}

// Target returns the controller the command was issued for.
func (c Command) Target() *Controller {
	return c.target
}

// CommandSink accepts commands from the dispatcher goroutine. Implementations
// must be safe for concurrent use and must preserve posting order.
type CommandSink interface {
	Post(cmd Command)
}
