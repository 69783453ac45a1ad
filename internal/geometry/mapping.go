package geometry

// Placement is what the container-space mapping needs to know about a window.
type Placement interface {
	// FrameRect is the outer geometry in display-global coordinates.
	FrameRect() Rect
	// IsTopLevel reports whether the window is its own container.
	IsTopLevel() bool
	// ContainerFrame returns the global frame of the top-level container, or
	// false when there is none (or it cannot be resolved).
	ContainerFrame() (Rect, bool)
}

// containerOrigin returns the global origin of w's container when w is
// embedded.
func containerOrigin(w Placement) (Point, bool) {
	if w == nil || w.IsTopLevel() {
		return Point{}, false
	}
	frame, ok := w.ContainerFrame()
	if !ok {
		return Point{}, false
	}
	return frame.TopLeft(), true
}

// MapFrameToContainerSpace returns w's frame expressed in the coordinate space
// of its top-level container. Top-level windows are returned unchanged.
func MapFrameToContainerSpace(w Placement) Rect {
	if w == nil {
		return Rect{}
	}
	frame := w.FrameRect()
	origin, ok := containerOrigin(w)
	if !ok {
		return frame
	}
	return RectFromCorners(
		frame.TopLeft().Sub(origin),
		frame.BottomRight().Sub(origin),
	)
}

// MapPointToContainerSpace maps a global pointer position into w's container
// space.
func MapPointToContainerSpace(w Placement, global Point) Point {
	origin, ok := containerOrigin(w)
	if !ok {
		return global
	}
	return global.Sub(origin)
}

// MapPointFromContainerSpace is the inverse of MapPointToContainerSpace.
func MapPointFromContainerSpace(w Placement, local Point) Point {
	origin, ok := containerOrigin(w)
	if !ok {
		return local
	}
	return local.Add(origin)
}
