package frameless

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

type fakeWindow struct {
	mu        sync.Mutex
	frame     geometry.Rect
	container *geometry.Rect
	minW      int
	minH      int
	maximized bool
	pointer   geometry.Point

	moves      []geometry.Point
	geometries []geometry.Rect
	grabs      int
}

func (w *fakeWindow) ID() platform.WindowID { return 1 }

func (w *fakeWindow) FrameRect() geometry.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frame
}

func (w *fakeWindow) IsTopLevel() bool { return w.container == nil }

func (w *fakeWindow) ContainerFrame() (geometry.Rect, bool) {
	if w.container == nil {
		return geometry.Rect{}, false
	}
	return *w.container, true
}

func (w *fakeWindow) MinimumSize() (int, int)         { return w.minW, w.minH }
func (w *fakeWindow) IsMaximizedOrFullscreen() bool   { return w.maximized }
func (w *fakeWindow) PointerPosition() geometry.Point { return w.pointer }

func (w *fakeWindow) ApplyMove(p geometry.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moves = append(w.moves, p)
}

func (w *fakeWindow) ApplyGeometry(r geometry.Rect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.geometries = append(w.geometries, r)
}

func (w *fakeWindow) ReleasePointerGrab() { w.grabs++ }

type nativeWindow struct {
	fakeWindow
	accept      bool
	nativeMoves int
	resizes     []geometry.Direction
}

func (w *nativeWindow) TryNativeSystemMove(geometry.Point) bool {
	w.nativeMoves++
	return w.accept
}

func (w *nativeWindow) TryNativeSystemResize(dir geometry.Direction, _ geometry.Point) bool {
	w.resizes = append(w.resizes, dir)
	return w.accept
}

type recordingSink struct {
	mu   sync.Mutex
	cmds []Command
	ch   chan Command
}

func newRecordingSink() *recordingSink {
	return &recordingSink{ch: make(chan Command, 64)}
}

func (s *recordingSink) Post(cmd Command) {
	s.mu.Lock()
	s.cmds = append(s.cmds, cmd)
	s.mu.Unlock()
	select {
	case s.ch <- cmd:
	default:
	}
}

func (s *recordingSink) kinds() []CommandKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CommandKind, len(s.cmds))
	for i, c := range s.cmds {
		out[i] = c.Kind
	}
	return out
}

func (s *recordingSink) last() Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmds[len(s.cmds)-1]
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	s.cmds = nil
	s.mu.Unlock()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pump handles every queued event synchronously on the test goroutine.
func pump(d *Dispatcher) {
	for {
		ev, ok := d.queue.TryPop()
		if !ok {
			return
		}
		d.dispatch(ev)
	}
}

func newHarness(win platform.Window, opts Options) (*Dispatcher, *Controller, *recordingSink) {
	sink := newRecordingSink()
	d := NewDispatcher(DispatcherConfig{Sink: sink, Logger: testLogger()})
	return d, Attach(d, win, opts), sink
}

func sameKinds(got, want []CommandKind) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPressOnBorderKeepsResizing(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 2, Y: 300})
	c.OnPress(geometry.Point{X: 2, Y: 300})
	pump(d)

	st := c.State()
	if st.Phase() != PhaseResizing || st.Direction != geometry.Left {
		t.Fatalf("after press on left border: phase=%v dir=%v, want resizing left", st.Phase(), st.Direction)
	}
	if st.Dragging {
		t.Fatalf("press on a border must not start a move")
	}
	want := []CommandKind{CommandSetCursor, CommandReleaseGrab}
	if got := sink.kinds(); !sameKinds(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestPressInsideStartsMove(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}}
	d, c, sink := newHarness(win, Options{})

	c.OnPress(geometry.Point{X: 150, Y: 120})
	pump(d)

	st := c.State()
	if st.Phase() != PhaseMoving {
		t.Fatalf("phase = %v, want moving", st.Phase())
	}
	if st.DragOffset != (geometry.Point{X: 50, Y: 20}) {
		t.Fatalf("drag offset = %v, want (50,20)", st.DragOffset)
	}
	if cmd := sink.last(); cmd.Kind != CommandSetCursor || cmd.Shape != geometry.CursorSizeAll {
		t.Fatalf("last command = %v/%v, want set-cursor size-all", cmd.Kind, cmd.Shape)
	}

	sink.reset()
	c.OnMove(geometry.Point{X: 160, Y: 130})
	pump(d)

	cmd := sink.last()
	if cmd.Kind != CommandMove || cmd.Point != (geometry.Point{X: 110, Y: 110}) {
		t.Fatalf("move command = %v %v, want move (110,110)", cmd.Kind, cmd.Point)
	}
}

func TestMoveIgnoredWhileMaximized(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}, maximized: true}
	d, c, sink := newHarness(win, Options{})

	c.OnPress(geometry.Point{X: 200, Y: 150})
	c.OnMove(geometry.Point{X: 220, Y: 170})
	pump(d)

	for _, k := range sink.kinds() {
		if k == CommandMove {
			t.Fatalf("maximized window must not be moved")
		}
	}
}

func TestPressWithMoveRefused(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}
	d, c, sink := newHarness(win, Options{Policy: MoveNowhere})

	c.OnPress(geometry.Point{X: 200, Y: 150})
	c.OnMove(geometry.Point{X: 250, Y: 150})
	pump(d)

	if st := c.State(); st.Phase() != PhasePressed {
		t.Fatalf("phase = %v, want pressed", st.Phase())
	}
	if got := sink.kinds(); len(got) != 0 {
		t.Fatalf("commands = %v, want none", got)
	}
}

func TestTitleBarPolicy(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}}
	d, c, _ := newHarness(win, Options{Policy: TitleBarPolicy(win.FrameRect, 30)})

	c.OnPress(geometry.Point{X: 300, Y: 250})
	pump(d)
	if c.State().Dragging {
		t.Fatalf("press below the title bar must not drag")
	}

	c.OnRelease()
	c.OnPress(geometry.Point{X: 300, Y: 110})
	pump(d)
	if !c.State().Dragging {
		t.Fatalf("press in the title bar should drag")
	}
}

func TestResizeFollowsPointer(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, minW: 100, minH: 100}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 499, Y: 250})
	c.OnPress(geometry.Point{X: 499, Y: 250})
	c.OnMove(geometry.Point{X: 599, Y: 250})
	pump(d)

	cmd := sink.last()
	want := geometry.Rect{X: 100, Y: 100, Width: 500, Height: 300}
	if cmd.Kind != CommandGeometry || cmd.Rect != want {
		t.Fatalf("last command = %v %v, want geometry %v", cmd.Kind, cmd.Rect, want)
	}
}

func TestResizeSuppressedWhenDisabledMidGesture(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 499, Y: 250})
	c.OnPress(geometry.Point{X: 499, Y: 250})
	c.SetResizeEnabled(false)
	c.OnMove(geometry.Point{X: 599, Y: 250})
	pump(d)

	for _, k := range sink.kinds() {
		if k == CommandGeometry {
			t.Fatalf("resize must not be applied while disabled")
		}
	}
}

func TestReleaseResetsToIdle(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 799, Y: 300})
	c.OnPress(geometry.Point{X: 799, Y: 300})
	pump(d)
	if c.State().Phase() != PhaseResizing {
		t.Fatalf("expected resizing before release")
	}

	sink.reset()
	c.OnRelease()
	pump(d)

	st := c.State()
	if st.Phase() != PhaseIdle || st.ButtonPressed || st.CursorOverrideActive {
		t.Fatalf("after release: %+v, want idle with no override", st)
	}
	want := []CommandKind{CommandClearCursor}
	if got := sink.kinds(); !sameKinds(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestHoverDisabledResizeClearsCursor(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 0, Y: 300})
	c.SetResizeEnabled(false)
	c.OnHoverMove(geometry.Point{X: 0, Y: 300})
	pump(d)

	st := c.State()
	if st.Direction != geometry.None || st.CursorOverrideActive {
		t.Fatalf("state = %+v, want no direction and no override", st)
	}
	want := []CommandKind{CommandSetCursor, CommandClearCursor}
	if got := sink.kinds(); !sameKinds(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestHoverIgnoredWhilePressed(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, _ := newHarness(win, Options{})

	c.OnPress(geometry.Point{X: 400, Y: 300})
	c.OnHoverMove(geometry.Point{X: 0, Y: 0})
	c.OnLeave()
	c.OnFocusIn()
	pump(d)

	st := c.State()
	if st.Phase() != PhaseMoving || st.Direction != geometry.None {
		t.Fatalf("state = %+v, want moving unchanged", st)
	}
}

func TestFocusInClassifiesCurrentPointer(t *testing.T) {
	win := &fakeWindow{
		frame:   geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600},
		pointer: geometry.Point{X: 799, Y: 599},
	}
	d, c, _ := newHarness(win, Options{})

	c.OnFocusIn()
	pump(d)

	if dir := c.State().Direction; dir != geometry.BottomRight {
		t.Fatalf("direction = %v, want bottom-right", dir)
	}
}

func TestLeaveClearsOnlyOwnedCursor(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, sink := newHarness(win, Options{})

	c.OnLeave()
	pump(d)
	if got := sink.kinds(); len(got) != 0 {
		t.Fatalf("leave without an override issued %v", got)
	}

	c.OnHoverMove(geometry.Point{X: 400, Y: 0})
	c.OnLeave()
	pump(d)
	want := []CommandKind{CommandSetCursor, CommandClearCursor}
	if got := sink.kinds(); !sameKinds(got, want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
}

func TestEmbeddedWindowUsesContainerSpace(t *testing.T) {
	container := geometry.Rect{X: 200, Y: 100, Width: 800, Height: 600}
	win := &fakeWindow{
		frame:     geometry.Rect{X: 240, Y: 160, Width: 240, Height: 160},
		container: &container,
	}
	d, c, sink := newHarness(win, Options{})

	c.OnPress(geometry.Point{X: 300, Y: 200})
	c.OnMove(geometry.Point{X: 310, Y: 205})
	pump(d)

	// Frame in container space is (40,60); offset is pointer minus that.
	cmd := sink.last()
	if cmd.Kind != CommandMove || cmd.Point != (geometry.Point{X: 50, Y: 65}) {
		t.Fatalf("move = %v %v, want move (50,65)", cmd.Kind, cmd.Point)
	}
}

func TestDetachDropsEvents(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 0, Y: 0})
	c.Detach()
	c.OnHoverMove(geometry.Point{X: 799, Y: 0})
	pump(d)

	if got := sink.kinds(); len(got) != 0 {
		t.Fatalf("detached controller produced %v", got)
	}
	if d.queue.Len() != 0 {
		t.Fatalf("queue not empty after pump")
	}
}

func TestNativeMoveSuppressesSyntheticMoves(t *testing.T) {
	win := &nativeWindow{fakeWindow: fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}, accept: true}
	logger := testLogger()
	broker := NewCursorBroker(nil)
	mb := NewMailbox(broker, logger)
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: logger})
	c := Attach(d, win, Options{NativeDrag: true})

	c.OnPress(geometry.Point{X: 200, Y: 150})
	pump(d)
	mb.Drain()

	if win.nativeMoves != 1 {
		t.Fatalf("native move attempts = %d, want 1", win.nativeMoves)
	}
	if !c.State().NativeGesture {
		t.Fatalf("native gesture flag not set")
	}

	c.OnMove(geometry.Point{X: 250, Y: 150})
	pump(d)
	mb.Drain()
	if len(win.moves) != 0 {
		t.Fatalf("synthetic move applied during native gesture: %v", win.moves)
	}
}

func TestNativeDeclinedFallsBack(t *testing.T) {
	win := &nativeWindow{fakeWindow: fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}}
	logger := testLogger()
	mb := NewMailbox(NewCursorBroker(nil), logger)
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: logger})
	c := Attach(d, win, Options{NativeDrag: true})

	c.OnPress(geometry.Point{X: 200, Y: 150})
	pump(d)
	mb.Drain() // declines and posts EventNativeDeclined
	pump(d)

	if c.State().NativeGesture {
		t.Fatalf("native flag should be cleared after decline")
	}

	c.OnMove(geometry.Point{X: 250, Y: 170})
	pump(d)
	mb.Drain()

	if len(win.moves) != 1 || win.moves[0] != (geometry.Point{X: 50, Y: 20}) {
		t.Fatalf("synthetic moves = %v, want [(50,20)]", win.moves)
	}
}

func TestNativeResizeCarriesDirection(t *testing.T) {
	win := &nativeWindow{fakeWindow: fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}, accept: true}
	logger := testLogger()
	mb := NewMailbox(NewCursorBroker(nil), logger)
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: logger})
	c := Attach(d, win, Options{NativeDrag: true})

	c.OnHoverMove(geometry.Point{X: 0, Y: 299})
	c.OnPress(geometry.Point{X: 0, Y: 299})
	pump(d)
	mb.Drain()

	if len(win.resizes) != 1 || win.resizes[0] != geometry.BottomLeft {
		t.Fatalf("native resizes = %v, want [bottom-left]", win.resizes)
	}
	if win.grabs != 1 {
		t.Fatalf("pointer grab releases = %d, want 1", win.grabs)
	}
}

func TestDispatcherPreservesOrder(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}}
	sink := newRecordingSink()
	d := NewDispatcher(DispatcherConfig{Sink: sink, Logger: testLogger()})
	c := Attach(d, win, Options{})
	d.Start()
	defer d.Stop()

	c.OnPress(geometry.Point{X: 150, Y: 120})
	for i := 1; i <= 5; i++ {
		c.OnMove(geometry.Point{X: 150 + i, Y: 120})
	}

	var moves []geometry.Point
	timeout := time.After(2 * time.Second)
	for len(moves) < 5 {
		select {
		case cmd := <-sink.ch:
			if cmd.Kind == CommandMove {
				moves = append(moves, cmd.Point)
			}
		case <-timeout:
			t.Fatalf("timed out waiting for moves, got %v", moves)
		}
	}
	for i, p := range moves {
		if want := (geometry.Point{X: 101 + i, Y: 100}); p != want {
			t.Fatalf("move %d = %v, want %v", i, p, want)
		}
	}
}

func TestDispatcherStopDiscardsPending(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}
	d, c, sink := newHarness(win, Options{})

	c.OnHoverMove(geometry.Point{X: 0, Y: 0})
	c.OnHoverMove(geometry.Point{X: 399, Y: 0})
	d.Stop()

	if d.Post(Event{Kind: EventLeave, target: c}) {
		t.Fatalf("post after stop should be rejected")
	}

	d.Start()
	select {
	case <-d.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("dispatcher did not exit after stop")
	}
	if got := sink.kinds(); len(got) != 0 {
		t.Fatalf("events handled after shutdown: %v", got)
	}
}

func TestDispatcherRecoversFromPanic(t *testing.T) {
	win := &panicWindow{fakeWindow: fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 400, Height: 300}}}
	d, c, sink := newHarness(win, Options{})

	c.OnFocusIn() // PointerPosition panics
	c.OnHoverMove(geometry.Point{X: 0, Y: 150})
	pump(d)

	if got := sink.kinds(); !sameKinds(got, []CommandKind{CommandSetCursor}) {
		t.Fatalf("commands after panic = %v, want [set-cursor]", got)
	}
}

type panicWindow struct {
	fakeWindow
}

func (w *panicWindow) PointerPosition() geometry.Point {
	panic("pointer unavailable")
}
