package ebitenhost

import (
	"sync"

	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

// Window is the top-level ebiten window. Queries read a snapshot refreshed
// by Sync once per tick, so the dispatcher never touches ebiten directly.
type Window struct {
	sys System
	id  platform.WindowID

	minWidth  int
	minHeight int

	mu        sync.RWMutex
	frame     geometry.Rect
	maximized bool
	pointer   geometry.Point
}

var _ platform.Window = (*Window)(nil)

// NewWindow wraps the ebiten window and takes the first snapshot.
func NewWindow(sys System, id platform.WindowID, minWidth, minHeight int) *Window {
	w := &Window{sys: sys, id: id, minWidth: minWidth, minHeight: minHeight}
	w.Sync()
	return w
}

// Sync refreshes the snapshot from ebiten. Call it on the game goroutine.
func (w *Window) Sync() {
	x, y := w.sys.WindowPosition()
	width, height := w.sys.WindowSize()
	cx, cy := w.sys.CursorPosition()
	maximized := w.sys.IsMaximizedOrFullscreen()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = geometry.Rect{X: x, Y: y, Width: width, Height: height}
	w.pointer = geometry.Point{X: x + cx, Y: y + cy}
	w.maximized = maximized
}

func (w *Window) ID() platform.WindowID { return w.id }

func (w *Window) FrameRect() geometry.Rect {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.frame
}

func (w *Window) IsTopLevel() bool { return true }

func (w *Window) ContainerFrame() (geometry.Rect, bool) { return geometry.Rect{}, false }

func (w *Window) MinimumSize() (int, int) { return w.minWidth, w.minHeight }

func (w *Window) IsMaximizedOrFullscreen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.maximized
}

// PointerPosition returns the pointer in screen coordinates as of the last
// Sync.
func (w *Window) PointerPosition() geometry.Point {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pointer
}

func (w *Window) ApplyMove(p geometry.Point) {
	w.sys.SetWindowPosition(p.X, p.Y)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame.X, w.frame.Y = p.X, p.Y
}

func (w *Window) ApplyGeometry(r geometry.Rect) {
	if r.Empty() {
		return
	}
	w.sys.SetWindowPosition(r.X, r.Y)
	w.sys.SetWindowSize(r.Width, r.Height)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame = r
}

// ReleasePointerGrab is a no-op: ebiten never grabs the pointer.
func (w *Window) ReleasePointerGrab() {}

// Panel is a rectangle drawn inside the top-level window and managed as an
// embedded window. Its positioning space is the window's client area.
type Panel struct {
	container *Window
	id        platform.WindowID

	minWidth  int
	minHeight int

	mu    sync.RWMutex
	local geometry.Rect
}

var _ platform.Window = (*Panel)(nil)

// NewPanel creates a panel at local, relative to container.
func NewPanel(container *Window, id platform.WindowID, local geometry.Rect, minWidth, minHeight int) *Panel {
	return &Panel{container: container, id: id, local: local, minWidth: minWidth, minHeight: minHeight}
}

// Local returns the panel rectangle in container space.
func (p *Panel) Local() geometry.Rect {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.local
}

func (p *Panel) ID() platform.WindowID { return p.id }

// FrameRect returns the panel in screen coordinates.
func (p *Panel) FrameRect() geometry.Rect {
	return p.Local().Translate(p.container.FrameRect().TopLeft())
}

func (p *Panel) IsTopLevel() bool { return false }

func (p *Panel) ContainerFrame() (geometry.Rect, bool) {
	frame := p.container.FrameRect()
	return frame, !frame.Empty()
}

func (p *Panel) MinimumSize() (int, int) { return p.minWidth, p.minHeight }

func (p *Panel) IsMaximizedOrFullscreen() bool { return false }

func (p *Panel) PointerPosition() geometry.Point { return p.container.PointerPosition() }

func (p *Panel) ApplyMove(topLeft geometry.Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.local.X, p.local.Y = topLeft.X, topLeft.Y
}

func (p *Panel) ApplyGeometry(r geometry.Rect) {
	if r.Empty() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.local = r
}

func (p *Panel) ReleasePointerGrab() {}
