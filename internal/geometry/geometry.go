// Package geometry holds the pure math behind frameless window interaction:
// border hit-testing, resize rectangles and container-space mapping. Nothing in
// here keeps state or touches a window, so every function is safe to call from
// any goroutine.
package geometry

import "fmt"

// Point is a pixel coordinate.
type Point struct {
	X int
	Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect describes a rectangular region. Width and Height count pixels, so the
// last pixel column is X+Width-1.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// RectFromCorners builds a rect from an inclusive top-left and bottom-right pixel.
func RectFromCorners(topLeft, bottomRight Point) Rect {
	return Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.X - topLeft.X + 1,
		Height: bottomRight.Y - topLeft.Y + 1,
	}
}

// Left returns the first pixel column.
func (r Rect) Left() int { return r.X }

// Top returns the first pixel row.
func (r Rect) Top() int { return r.Y }

// Right returns the last pixel column.
func (r Rect) Right() int { return r.X + r.Width - 1 }

// Bottom returns the last pixel row.
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

// TopLeft returns the origin.
func (r Rect) TopLeft() Point { return Point{X: r.X, Y: r.Y} }

// BottomRight returns the last pixel.
func (r Rect) BottomRight() Point { return Point{X: r.Right(), Y: r.Bottom()} }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies on a pixel of r.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() &&
		p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Direction names the border region under the pointer, or the edge being
// dragged during a resize.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// movesLeft reports whether the left edge follows the pointer.
func (d Direction) movesLeft() bool {
	return d == Left || d == TopLeft || d == BottomLeft
}

func (d Direction) movesRight() bool {
	return d == Right || d == TopRight || d == BottomRight
}

func (d Direction) movesTop() bool {
	return d == Up || d == TopLeft || d == TopRight
}

func (d Direction) movesBottom() bool {
	return d == Down || d == BottomLeft || d == BottomRight
}

// CursorShape is a toolkit-neutral cursor hint. Hosts translate it to their
// own cursor ids.
type CursorShape int

const (
	CursorArrow CursorShape = iota
	// CursorSizeFDiag is the "\" diagonal used for top-left/bottom-right.
	CursorSizeFDiag
	// CursorSizeBDiag is the "/" diagonal used for top-right/bottom-left.
	CursorSizeBDiag
	CursorSizeHor
	CursorSizeVer
	// CursorSizeAll is shown while a window is being moved.
	CursorSizeAll
)

// String returns the string representation of the cursor shape
func (c CursorShape) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorSizeFDiag:
		return "size-fdiag"
	case CursorSizeBDiag:
		return "size-bdiag"
	case CursorSizeHor:
		return "size-hor"
	case CursorSizeVer:
		return "size-ver"
	case CursorSizeAll:
		return "size-all"
	default:
		return "unknown"
	}
}

// Cursor returns the resize cursor matching the direction.
func (d Direction) Cursor() CursorShape {
	switch d {
	case TopLeft, BottomRight:
		return CursorSizeFDiag
	case TopRight, BottomLeft:
		return CursorSizeBDiag
	case Left, Right:
		return CursorSizeHor
	case Up, Down:
		return CursorSizeVer
	default:
		return CursorArrow
	}
}
