package geometry

// ComputeResizeRect returns the rectangle origin becomes when the edges named
// by dir follow p. Each axis is handled on its own: when the dimension left
// between the pointer and the fixed edge would be at or below the minimum, the
// moving edge stays where it is; otherwise it lands on the pointer. Corners
// apply both axes.
//
// The result never drops below minWidth x minHeight. An empty origin or a None
// direction returns origin unchanged.
func ComputeResizeRect(dir Direction, origin Rect, p Point, minWidth, minHeight int) Rect {
	if dir == None || origin.Empty() {
		return origin
	}
	if minWidth < 0 {
		minWidth = 0
	}
	if minHeight < 0 {
		minHeight = 0
	}

	r := origin
	switch {
	case dir.movesLeft():
		r.X, r.Width = resizeLow(origin.Left(), origin.Right(), p.X, minWidth)
	case dir.movesRight():
		r.X, r.Width = resizeHigh(origin.Left(), origin.Right(), p.X, minWidth)
	}
	switch {
	case dir.movesTop():
		r.Y, r.Height = resizeLow(origin.Top(), origin.Bottom(), p.Y, minHeight)
	case dir.movesBottom():
		r.Y, r.Height = resizeHigh(origin.Top(), origin.Bottom(), p.Y, minHeight)
	}
	return r
}

// resizeLow moves the low edge of [low, high] to pointer, keeping high fixed.
func resizeLow(low, high, pointer, minSize int) (start, size int) {
	start, size = low, high-low+1
	if high-pointer > minSize {
		start, size = pointer, high-pointer+1
	}
	if size < minSize {
		start, size = high-minSize+1, minSize
	}
	return start, size
}

// resizeHigh moves the high edge of [low, high] to pointer, keeping low fixed.
func resizeHigh(low, high, pointer, minSize int) (start, size int) {
	start, size = low, high-low+1
	if pointer-low > minSize {
		size = pointer - low + 1
	}
	if size < minSize {
		size = minSize
	}
	return start, size
}
