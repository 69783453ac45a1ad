// Package ebitenhost runs frameless controllers inside an undecorated ebiten
// window. Input is polled once per tick and the command mailbox is drained
// on the game's Update goroutine.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1broseidon/frameless/internal/geometry"
)

// System is the slice of the ebiten window API the host uses. All methods
// run on the game goroutine.
type System interface {
	WindowPosition() (x, y int)
	SetWindowPosition(x, y int)
	WindowSize() (width, height int)
	SetWindowSize(width, height int)
	IsMaximizedOrFullscreen() bool
	// CursorPosition is relative to the window's client area.
	CursorPosition() (x, y int)
	SetCursorShape(shape geometry.CursorShape)
}

// EbitenSystem forwards to the ebiten package.
type EbitenSystem struct{}

var _ System = EbitenSystem{}

func (EbitenSystem) WindowPosition() (int, int) { return ebiten.WindowPosition() }

func (EbitenSystem) SetWindowPosition(x, y int) { ebiten.SetWindowPosition(x, y) }

func (EbitenSystem) WindowSize() (int, int) { return ebiten.WindowSize() }

func (EbitenSystem) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }

func (EbitenSystem) IsMaximizedOrFullscreen() bool {
	return ebiten.IsWindowMaximized() || ebiten.IsFullscreen()
}

func (EbitenSystem) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (EbitenSystem) SetCursorShape(shape geometry.CursorShape) {
	ebiten.SetCursorShape(CursorShape(shape))
}

// CursorShape maps a cursor hint to the ebiten cursor.
func CursorShape(shape geometry.CursorShape) ebiten.CursorShapeType {
	switch shape {
	case geometry.CursorSizeFDiag:
		return ebiten.CursorShapeNWSEResize
	case geometry.CursorSizeBDiag:
		return ebiten.CursorShapeNESWResize
	case geometry.CursorSizeHor:
		return ebiten.CursorShapeEWResize
	case geometry.CursorSizeVer:
		return ebiten.CursorShapeNSResize
	case geometry.CursorSizeAll:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}

// Cursor is the single override slot for the ebiten window.
type Cursor struct {
	sys System
}

// NewCursor returns the override slot backed by sys.
func NewCursor(sys System) *Cursor {
	return &Cursor{sys: sys}
}

// SetOverrideCursor shows shape over the whole window.
func (c *Cursor) SetOverrideCursor(shape geometry.CursorShape) {
	c.sys.SetCursorShape(shape)
}

// RestoreOverrideCursor returns to the default arrow.
func (c *Cursor) RestoreOverrideCursor() {
	c.sys.SetCursorShape(geometry.CursorArrow)
}
