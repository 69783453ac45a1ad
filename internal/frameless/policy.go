package frameless

import "github.com/1broseidon/frameless/internal/geometry"

// MovePolicy decides whether a press at a display-global point may start a
// window move. Hosts use it to restrict dragging to a title bar.
type MovePolicy interface {
	CanMove(global geometry.Point) bool
}

// MovePolicyFunc adapts a function to MovePolicy.
type MovePolicyFunc func(global geometry.Point) bool

// CanMove calls f(global).
func (f MovePolicyFunc) CanMove(global geometry.Point) bool {
	return f(global)
}

// MoveAnywhere allows dragging from any interior point.
var MoveAnywhere MovePolicy = MovePolicyFunc(func(geometry.Point) bool { return true })

// MoveNowhere disables dragging entirely.
var MoveNowhere MovePolicy = MovePolicyFunc(func(geometry.Point) bool { return false })

// TitleBarPolicy allows moves only when the pointer is within the top height
// pixels of the window's frame.
func TitleBarPolicy(frame func() geometry.Rect, height int) MovePolicy {
	return MovePolicyFunc(func(global geometry.Point) bool {
		if height <= 0 {
			return false
		}
		r := frame()
		bar := geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: min(height, r.Height)}
		return bar.Contains(global)
	})
}
