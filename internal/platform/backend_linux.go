//go:build linux

package platform

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/x11"
)

// X11Window adapts an X window to the Window contract. A window with a
// container is embedded: its positioning space is the container's.
type X11Window struct {
	conn      *x11.Connection
	id        xproto.Window
	container *X11Window

	minWidth  int
	minHeight int
}

var (
	_ Window        = (*X11Window)(nil)
	_ NativeDragger = (*X11Window)(nil)
)

// NewX11Window wraps a top-level window. minWidth and minHeight are used when
// the window publishes no WM_NORMAL_HINTS minimum.
func NewX11Window(conn *x11.Connection, id xproto.Window, minWidth, minHeight int) *X11Window {
	return &X11Window{conn: conn, id: id, minWidth: minWidth, minHeight: minHeight}
}

// NewEmbeddedX11Window wraps a child window positioned inside container.
func NewEmbeddedX11Window(conn *x11.Connection, id xproto.Window, container *X11Window, minWidth, minHeight int) *X11Window {
	return &X11Window{conn: conn, id: id, container: container, minWidth: minWidth, minHeight: minHeight}
}

// XID returns the underlying X window id.
func (w *X11Window) XID() xproto.Window {
	return w.id
}

// ID returns the platform-neutral window id.
func (w *X11Window) ID() WindowID {
	return WindowID(w.id)
}

// FrameRect returns the window geometry in root coordinates. It is empty when
// the window is gone, which makes every geometry operation a no-op.
func (w *X11Window) FrameRect() geometry.Rect {
	rect, err := w.conn.WindowRect(w.id)
	if err != nil {
		return geometry.Rect{}
	}
	return rect
}

// IsTopLevel reports whether the window has no container.
func (w *X11Window) IsTopLevel() bool {
	return w.container == nil
}

// ContainerFrame returns the container's frame in root coordinates.
func (w *X11Window) ContainerFrame() (geometry.Rect, bool) {
	if w.container == nil {
		return geometry.Rect{}, false
	}
	rect := w.container.FrameRect()
	return rect, !rect.Empty()
}

// MinimumSize prefers the size hints the window publishes.
func (w *X11Window) MinimumSize() (int, int) {
	if width, height, ok := w.conn.MinimumSize(w.id); ok {
		return width, height
	}
	return w.minWidth, w.minHeight
}

// IsMaximizedOrFullscreen reports the EWMH state of the top-level window.
func (w *X11Window) IsMaximizedOrFullscreen() bool {
	if w.container != nil {
		return w.container.IsMaximizedOrFullscreen()
	}
	return w.conn.IsMaximizedOrFullscreen(w.id)
}

// PointerPosition returns the pointer location in root coordinates.
func (w *X11Window) PointerPosition() geometry.Point {
	p, err := w.conn.PointerPosition()
	if err != nil {
		return geometry.Point{X: -1, Y: -1}
	}
	return p
}

// ApplyMove moves the window's top-left corner to p.
func (w *X11Window) ApplyMove(p geometry.Point) {
	if w.container != nil {
		xwindow.New(w.conn.XUtil, w.id).Move(p.X, p.Y)
		return
	}
	w.conn.MoveWindow(w.id, p.X, p.Y)
}

// ApplyGeometry moves and resizes the window to r.
func (w *X11Window) ApplyGeometry(r geometry.Rect) {
	if r.Empty() {
		return
	}
	if w.container != nil {
		xwindow.New(w.conn.XUtil, w.id).MoveResize(r.X, r.Y, r.Width, r.Height)
		return
	}
	w.conn.MoveResizeWindow(w.id, r.X, r.Y, r.Width, r.Height)
}

// ReleasePointerGrab drops the implicit grab taken by the button press.
func (w *X11Window) ReleasePointerGrab() {
	mousebind.UngrabPointer(w.conn.XUtil)
}

// TryNativeSystemMove asks the window manager to run the move.
func (w *X11Window) TryNativeSystemMove(pointer geometry.Point) bool {
	if w.container != nil {
		return false
	}
	return w.conn.StartMoveResize(w.id, x11.MoveResizeAction(geometry.None), pointer) == nil
}

// TryNativeSystemResize asks the window manager to run the resize.
func (w *X11Window) TryNativeSystemResize(dir geometry.Direction, pointer geometry.Point) bool {
	if w.container != nil || dir == geometry.None {
		return false
	}
	return w.conn.StartMoveResize(w.id, x11.MoveResizeAction(dir), pointer) == nil
}
