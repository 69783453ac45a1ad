package geometry

import (
	"math/rand"
	"testing"
)

func TestClassifyPoint_Scenarios(t *testing.T) {
	origin := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	tests := []struct {
		name      string
		point     Point
		wantDir   Direction
		wantShape CursorShape
	}{
		{"top-left corner", Point{2, 2}, TopLeft, CursorSizeFDiag},
		{"right edge", Point{799, 300}, Right, CursorSizeHor},
		{"interior", Point{400, 300}, None, CursorArrow},
		{"bottom-right corner", Point{797, 598}, BottomRight, CursorSizeFDiag},
		{"bottom-left corner", Point{0, 599}, BottomLeft, CursorSizeBDiag},
		{"top-right corner", Point{799, 0}, TopRight, CursorSizeBDiag},
		{"left edge", Point{5, 300}, Left, CursorSizeHor},
		{"top edge", Point{400, 0}, Up, CursorSizeVer},
		{"bottom edge", Point{400, 594}, Down, CursorSizeVer},
		{"just past left band", Point{6, 300}, None, CursorArrow},
		{"outside", Point{-1, 300}, None, CursorArrow},
		{"outside past right", Point{800, 300}, None, CursorArrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, shape := ClassifyPoint(origin, tt.point, 6)
			if dir != tt.wantDir || shape != tt.wantShape {
				t.Fatalf("ClassifyPoint(%v, %v, 6) = (%v, %v), want (%v, %v)",
					origin, tt.point, dir, shape, tt.wantDir, tt.wantShape)
			}
		})
	}
}

func TestClassifyPoint_NonPositiveBorderIsNone(t *testing.T) {
	origin := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	for _, border := range []int{0, -3} {
		if dir, _ := ClassifyPoint(origin, Point{0, 0}, border); dir != None {
			t.Fatalf("border %d: got %v, want none", border, dir)
		}
	}
}

func TestClassifyPoint_InteriorIsAlwaysNone(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		border := 1 + rng.Intn(10)
		origin := Rect{
			X:      rng.Intn(2000) - 1000,
			Y:      rng.Intn(2000) - 1000,
			Width:  2*border + 1 + rng.Intn(500),
			Height: 2*border + 1 + rng.Intn(500),
		}
		interiorW := origin.Width - 2*border
		interiorH := origin.Height - 2*border
		p := Point{
			X: origin.X + border + rng.Intn(interiorW),
			Y: origin.Y + border + rng.Intn(interiorH),
		}
		if dir, _ := ClassifyPoint(origin, p, border); dir != None {
			t.Fatalf("interior point %v of %v (border %d) classified as %v", p, origin, border, dir)
		}
	}
}

func TestClassifyPoint_EdgeBandsAndCornersPriority(t *testing.T) {
	origin := Rect{X: 100, Y: 50, Width: 300, Height: 200}
	border := 4

	for offset := 0; offset < border; offset++ {
		midY := origin.Y + origin.Height/2
		midX := origin.X + origin.Width/2

		checks := []struct {
			p    Point
			want Direction
		}{
			{Point{origin.Left() + offset, midY}, Left},
			{Point{origin.Right() - offset, midY}, Right},
			{Point{midX, origin.Top() + offset}, Up},
			{Point{midX, origin.Bottom() - offset}, Down},
			{Point{origin.Left() + offset, origin.Top() + border - 1}, TopLeft},
			{Point{origin.Right() - offset, origin.Bottom() - border + 1}, BottomRight},
			{Point{origin.Left() + offset, origin.Bottom()}, BottomLeft},
			{Point{origin.Right() - offset, origin.Top()}, TopRight},
		}
		for _, c := range checks {
			if got, _ := ClassifyPoint(origin, c.p, border); got != c.want {
				t.Errorf("offset %d: ClassifyPoint(%v) = %v, want %v", offset, c.p, got, c.want)
			}
		}
	}
}

func TestComputeResizeRect_Axes(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 400, Height: 300} // right=499 bottom=399

	tests := []struct {
		name string
		dir  Direction
		p    Point
		want Rect
	}{
		{"none keeps origin", None, Point{0, 0}, origin},
		{"right grows", Right, Point{599, 250}, Rect{100, 100, 500, 300}},
		{"right clamps at minimum", Right, Point{150, 250}, origin},
		{"left grows", Left, Point{50, 250}, Rect{50, 100, 450, 300}},
		{"left clamps at minimum", Left, Point{480, 250}, origin},
		{"up grows", Up, Point{300, 40}, Rect{100, 40, 400, 360}},
		{"down shrinks", Down, Point{300, 299}, Rect{100, 100, 400, 200}},
		{"top-left both", TopLeft, Point{90, 80}, Rect{90, 80, 410, 320}},
		{"top-right both", TopRight, Point{549, 80}, Rect{100, 80, 450, 320}},
		{"bottom-left both", BottomLeft, Point{90, 449}, Rect{90, 100, 410, 350}},
		{"bottom-right both", BottomRight, Point{549, 449}, Rect{100, 100, 450, 350}},
		{"top-right clamps vertical only", TopRight, Point{549, 390}, Rect{100, 100, 450, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeResizeRect(tt.dir, origin, tt.p, 100, 100)
			if got != tt.want {
				t.Fatalf("ComputeResizeRect(%v, %v, %v) = %v, want %v", tt.dir, origin, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeResizeRect_NeverBelowMinimum(t *testing.T) {
	dirs := []Direction{Up, Down, Left, Right, TopLeft, TopRight, BottomLeft, BottomRight}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		minW := rng.Intn(200)
		minH := rng.Intn(200)
		origin := Rect{
			X:      rng.Intn(1000) - 500,
			Y:      rng.Intn(1000) - 500,
			Width:  minW + 1 + rng.Intn(400),
			Height: minH + 1 + rng.Intn(400),
		}
		p := Point{X: rng.Intn(3000) - 1500, Y: rng.Intn(3000) - 1500}
		dir := dirs[rng.Intn(len(dirs))]

		got := ComputeResizeRect(dir, origin, p, minW, minH)
		if got.Width < minW || got.Height < minH {
			t.Fatalf("ComputeResizeRect(%v, %v, %v, %d, %d) = %v is below minimum",
				dir, origin, p, minW, minH, got)
		}
		if got.Width <= 0 || got.Height <= 0 {
			t.Fatalf("ComputeResizeRect(%v, %v, %v) produced empty rect %v", dir, origin, p, got)
		}
	}
}

func TestComputeResizeRect_ZeroMinimumAndEmptyOrigin(t *testing.T) {
	origin := Rect{X: 10, Y: 10, Width: 50, Height: 50}
	got := ComputeResizeRect(Right, origin, Point{0, 30}, 0, 0)
	if got != origin {
		t.Fatalf("pointer left of the fixed edge should keep origin, got %v", got)
	}

	empty := Rect{X: 10, Y: 10, Width: 0, Height: 20}
	if got := ComputeResizeRect(Left, empty, Point{0, 0}, 0, 0); got != empty {
		t.Fatalf("empty origin should be returned unchanged, got %v", got)
	}

	if got := ComputeResizeRect(Down, origin, Point{30, 200}, -5, -5); got.Height != 191 {
		t.Fatalf("negative minimum should behave as zero, got %v", got)
	}
}

type fakePlacement struct {
	frame     Rect
	topLevel  bool
	container *Rect
}

func (f fakePlacement) FrameRect() Rect  { return f.frame }
func (f fakePlacement) IsTopLevel() bool { return f.topLevel }
func (f fakePlacement) ContainerFrame() (Rect, bool) {
	if f.container == nil {
		return Rect{}, false
	}
	return *f.container, true
}

func TestMapping_TopLevelIsIdentity(t *testing.T) {
	w := fakePlacement{frame: Rect{X: 20, Y: 30, Width: 640, Height: 480}, topLevel: true}

	if got := MapFrameToContainerSpace(w); got != w.frame {
		t.Fatalf("frame mapping for top-level = %v, want %v", got, w.frame)
	}
	for _, p := range []Point{{0, 0}, {25, 35}, {-400, 9000}} {
		mapped := MapPointToContainerSpace(w, p)
		if mapped != p {
			t.Fatalf("MapPointToContainerSpace(%v) = %v, want identity", p, mapped)
		}
		if back := MapPointFromContainerSpace(w, mapped); back != p {
			t.Fatalf("round trip of %v = %v", p, back)
		}
	}
}

func TestMapping_EmbeddedTranslatesIntoContainer(t *testing.T) {
	container := Rect{X: 200, Y: 100, Width: 800, Height: 600}
	w := fakePlacement{
		frame:     Rect{X: 240, Y: 160, Width: 240, Height: 160},
		container: &container,
	}

	want := Rect{X: 40, Y: 60, Width: 240, Height: 160}
	if got := MapFrameToContainerSpace(w); got != want {
		t.Fatalf("MapFrameToContainerSpace = %v, want %v", got, want)
	}

	p := Point{250, 170}
	mapped := MapPointToContainerSpace(w, p)
	if mapped != (Point{50, 70}) {
		t.Fatalf("MapPointToContainerSpace(%v) = %v, want (50,70)", p, mapped)
	}
	if back := MapPointFromContainerSpace(w, mapped); back != p {
		t.Fatalf("round trip = %v, want %v", back, p)
	}
}

func TestMapping_MissingContainerPassesThrough(t *testing.T) {
	w := fakePlacement{frame: Rect{X: 5, Y: 5, Width: 10, Height: 10}}
	if got := MapFrameToContainerSpace(w); got != w.frame {
		t.Fatalf("frame without container = %v, want unchanged", got)
	}
	if got := MapPointToContainerSpace(w, Point{7, 8}); got != (Point{7, 8}) {
		t.Fatalf("point without container = %v, want unchanged", got)
	}
}

func TestDirectionString(t *testing.T) {
	if TopRight.String() != "top-right" || None.String() != "none" || Direction(99).String() != "unknown" {
		t.Fatalf("unexpected direction strings")
	}
}
