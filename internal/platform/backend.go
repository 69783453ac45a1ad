package platform

import "github.com/1broseidon/frameless/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Window abstracts the host window a frameless engine manages.
//
// The query methods are called from the dispatcher goroutine and must be safe
// for concurrent use. The Apply* and ReleasePointerGrab methods mutate the
// window and are only ever called on the UI thread.
//
// ApplyMove and ApplyGeometry take positioning-space coordinates: the
// container's space for embedded windows, display-global for top-level ones.
type Window interface {
	geometry.Placement

	ID() WindowID
	MinimumSize() (width, height int)
	IsMaximizedOrFullscreen() bool
	PointerPosition() geometry.Point

	ApplyMove(topLeft geometry.Point)
	ApplyGeometry(rect geometry.Rect)
	ReleasePointerGrab()
}

// CursorSlot is the process-wide, single-slot cursor override facility.
// Both methods run on the UI thread.
type CursorSlot interface {
	SetOverrideCursor(shape geometry.CursorShape)
	RestoreOverrideCursor()
}

// NativeDragger is optionally implemented by windows whose platform can run an
// interactive move/resize itself. A true return means the window manager owns
// the gesture from now on.
type NativeDragger interface {
	TryNativeSystemMove(pointer geometry.Point) bool
	TryNativeSystemResize(dir geometry.Direction, pointer geometry.Point) bool
}

// InputHandler receives the pointer and focus events a host window observes.
// Hosts must call it from the UI thread and treat a true return from
// OnHoverMove/OnPress as "event handled".
type InputHandler interface {
	OnFocusIn()
	OnHoverMove(global geometry.Point) bool
	OnPress(global geometry.Point) bool
	OnMove(global geometry.Point)
	OnRelease()
	OnLeave()
}
