package ebitenhost

import (
	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

// PointerState is one tick of polled input.
type PointerState struct {
	Global       geometry.Point
	Down         bool
	JustPressed  bool
	JustReleased bool
	Focused      bool
}

// Target is a region that receives pointer events.
type Target struct {
	Handler platform.InputHandler
	// Frame returns the region in screen coordinates.
	Frame func() geometry.Rect
}

// Router turns polled pointer state into the event stream a windowing
// system would deliver: crossing, hover, press with implicit capture, move
// and release. Targets are hit-tested front to back.
type Router struct {
	targets []Target

	hovered  int
	captured int
	focused  bool
	last     geometry.Point
	primed   bool
}

// NewRouter routes to targets, front-most first.
func NewRouter(targets ...Target) *Router {
	return &Router{targets: targets, hovered: -1, captured: -1}
}

// Step delivers the events implied by s.
func (r *Router) Step(s PointerState) {
	moved := !r.primed || s.Global != r.last
	r.last, r.primed = s.Global, true

	hit := r.hit(s.Global)

	if s.Focused && !r.focused {
		focus := hit
		if focus < 0 && len(r.targets) > 0 {
			focus = len(r.targets) - 1
		}
		if focus >= 0 {
			r.targets[focus].Handler.OnFocusIn()
		}
	}
	r.focused = s.Focused

	if r.captured >= 0 {
		t := r.targets[r.captured]
		if s.Down && !s.JustReleased {
			if moved {
				t.Handler.OnMove(s.Global)
			}
			return
		}
		r.captured = -1
		t.Handler.OnRelease()
		// Re-evaluate hover after the gesture.
		moved = true
	}

	if hit != r.hovered {
		if r.hovered >= 0 {
			r.targets[r.hovered].Handler.OnLeave()
		}
		r.hovered = hit
		moved = true
	}
	if hit < 0 {
		return
	}

	t := r.targets[hit]
	if s.JustPressed {
		r.captured = hit
		t.Handler.OnPress(s.Global)
		return
	}
	if moved {
		t.Handler.OnHoverMove(s.Global)
	}
}

// Captured reports whether a press is being tracked.
func (r *Router) Captured() bool {
	return r.captured >= 0
}

func (r *Router) hit(p geometry.Point) int {
	for i, t := range r.targets {
		if t.Frame().Contains(p) {
			return i
		}
	}
	return -1
}
