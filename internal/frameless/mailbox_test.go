package frameless

import (
	"testing"

	"github.com/1broseidon/frameless/internal/geometry"
)

type recordingSlot struct {
	calls []string
}

func (s *recordingSlot) SetOverrideCursor(shape geometry.CursorShape) {
	s.calls = append(s.calls, "set:"+shape.String())
}

func (s *recordingSlot) RestoreOverrideCursor() {
	s.calls = append(s.calls, "restore")
}

func TestCursorBroker_ReleaseOnlyByOwner(t *testing.T) {
	slot := &recordingSlot{}
	b := NewCursorBroker(slot)
	a, other := new(int), new(int)

	b.Acquire(a, geometry.CursorSizeHor)
	b.Acquire(a, geometry.CursorSizeHor)
	b.Acquire(other, geometry.CursorSizeVer)

	if b.Release(a) {
		t.Fatalf("superseded owner must not release the override")
	}
	owner, shape, ok := b.Current()
	if !ok || owner != other || shape != geometry.CursorSizeVer {
		t.Fatalf("Current() = (%v, %v, %v), want other/size-ver", owner, shape, ok)
	}
	if !b.Release(other) {
		t.Fatalf("owner release failed")
	}
	if b.Release(other) {
		t.Fatalf("double release should report false")
	}

	want := []string{"set:size-hor", "set:size-ver", "restore"}
	if len(slot.calls) != len(want) {
		t.Fatalf("slot calls = %v, want %v", slot.calls, want)
	}
	for i := range want {
		if slot.calls[i] != want[i] {
			t.Fatalf("slot calls = %v, want %v", slot.calls, want)
		}
	}
}

func TestMailbox_ExecutesInOrder(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}}
	slot := &recordingSlot{}
	mb := NewMailbox(NewCursorBroker(slot), testLogger())
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: testLogger()})
	c := Attach(d, win, Options{})

	mb.Post(Command{Kind: CommandMove, Point: geometry.Point{X: 1, Y: 1}, target: c})
	mb.Post(Command{Kind: CommandSetCursor, Shape: geometry.CursorSizeAll, target: c})
	mb.Post(Command{Kind: CommandMove, Point: geometry.Point{X: 2, Y: 2}, target: c})
	mb.Post(Command{Kind: CommandGeometry, Rect: geometry.Rect{X: 2, Y: 2, Width: 50, Height: 50}, target: c})
	mb.Post(Command{Kind: CommandClearCursor, target: c})

	select {
	case <-mb.Ready():
	default:
		t.Fatalf("Ready did not fire after Post")
	}
	if mb.Pending() != 5 {
		t.Fatalf("Pending() = %d, want 5", mb.Pending())
	}
	if n := mb.Drain(); n != 5 {
		t.Fatalf("Drain() = %d, want 5", n)
	}

	if len(win.moves) != 2 || win.moves[0] != (geometry.Point{X: 1, Y: 1}) || win.moves[1] != (geometry.Point{X: 2, Y: 2}) {
		t.Fatalf("moves = %v", win.moves)
	}
	if len(win.geometries) != 1 {
		t.Fatalf("geometries = %v", win.geometries)
	}
	if len(slot.calls) != 2 || slot.calls[0] != "set:size-all" || slot.calls[1] != "restore" {
		t.Fatalf("slot calls = %v", slot.calls)
	}
}

func TestMailbox_SkipsDetachedTargets(t *testing.T) {
	win := &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}}
	mb := NewMailbox(nil, testLogger())
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: testLogger()})
	c := Attach(d, win, Options{})

	mb.Post(Command{Kind: CommandMove, Point: geometry.Point{X: 5, Y: 5}, target: c})
	c.Detach()
	mb.Drain()

	if len(win.moves) != 0 {
		t.Fatalf("detached window was moved: %v", win.moves)
	}
}

func TestTwoControllersShareCursor(t *testing.T) {
	slot := &recordingSlot{}
	mb := NewMailbox(NewCursorBroker(slot), testLogger())
	d := NewDispatcher(DispatcherConfig{Sink: mb, Logger: testLogger()})

	left := Attach(d, &fakeWindow{frame: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}}, Options{})
	right := Attach(d, &fakeWindow{frame: geometry.Rect{X: 200, Y: 0, Width: 100, Height: 100}}, Options{})

	left.OnHoverMove(geometry.Point{X: 99, Y: 50})
	right.OnHoverMove(geometry.Point{X: 200, Y: 50})
	left.OnLeave()
	pump(d)
	mb.Drain()

	want := []string{"set:size-hor", "set:size-hor"}
	if len(slot.calls) != len(want) {
		t.Fatalf("slot calls = %v, want %v (left must not clear right's cursor)", slot.calls, want)
	}
}
