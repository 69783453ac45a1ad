package geometry

// DefaultBorderThickness is the hit-test margin used when a window does not
// configure one.
const DefaultBorderThickness = 6

// ClassifyPoint tests p against the border bands of origin. Each band is
// border pixels wide, counted inward from the edge pixel; the four corners are
// border x border squares and win over the edges they overlap.
//
// Priority: TopLeft, BottomRight, BottomLeft, TopRight, Left, Right, Up, Down.
// Anything else, including points outside origin, is None.
func ClassifyPoint(origin Rect, p Point, border int) (Direction, CursorShape) {
	if border <= 0 || !origin.Contains(p) {
		return None, CursorArrow
	}

	nearLeft := p.X <= origin.Left()+border-1
	nearRight := p.X >= origin.Right()-border+1
	nearTop := p.Y <= origin.Top()+border-1
	nearBottom := p.Y >= origin.Bottom()-border+1

	var dir Direction
	switch {
	case nearLeft && nearTop:
		dir = TopLeft
	case nearRight && nearBottom:
		dir = BottomRight
	case nearLeft && nearBottom:
		dir = BottomLeft
	case nearRight && nearTop:
		dir = TopRight
	case nearLeft:
		dir = Left
	case nearRight:
		dir = Right
	case nearTop:
		dir = Up
	case nearBottom:
		dir = Down
	default:
		dir = None
	}
	return dir, dir.Cursor()
}
