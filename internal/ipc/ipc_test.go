package ipc

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

type staticWindow struct {
	id    platform.WindowID
	frame geometry.Rect
}

func (w *staticWindow) ID() platform.WindowID                 { return w.id }
func (w *staticWindow) FrameRect() geometry.Rect              { return w.frame }
func (w *staticWindow) IsTopLevel() bool                      { return true }
func (w *staticWindow) ContainerFrame() (geometry.Rect, bool) { return geometry.Rect{}, false }
func (w *staticWindow) MinimumSize() (int, int)               { return 0, 0 }
func (w *staticWindow) IsMaximizedOrFullscreen() bool         { return false }
func (w *staticWindow) PointerPosition() geometry.Point       { return geometry.Point{} }
func (w *staticWindow) ApplyMove(geometry.Point)              {}
func (w *staticWindow) ApplyGeometry(geometry.Rect)           {}
func (w *staticWindow) ReleasePointerGrab()                   {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	server *Server
	client *Client
	window *Managed
	panel  *Managed
	quits  atomic.Int32
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	d := frameless.NewDispatcher(frameless.DispatcherConfig{Logger: testLogger()})
	win := frameless.Attach(d, &staticWindow{id: 1, frame: geometry.Rect{X: 10, Y: 20, Width: 800, Height: 600}}, frameless.Options{})
	panel := frameless.Attach(d, &staticWindow{id: 2, frame: geometry.Rect{X: 50, Y: 80, Width: 240, Height: 160}}, frameless.Options{})

	h := &harness{
		window: NewManaged("window", win, frameless.MoveAnywhere, true),
		panel:  NewManaged("panel", panel, frameless.MoveAnywhere, true),
	}
	socket := filepath.Join(t.TempDir(), "frameless.sock")
	h.server = NewServer(ServerConfig{
		SocketPath: socket,
		Host:       "test",
		Windows:    []*Managed{h.window, h.panel},
		Quit:       func() { h.quits.Add(1) },
		Logger:     testLogger(),
	})
	if err := h.server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(h.server.Stop)
	h.client = NewClient(socket)
	return h
}

func TestGetStatus(t *testing.T) {
	h := newHarness(t)

	status, err := h.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Host != "test" || len(status.Windows) != 2 {
		t.Fatalf("status = %+v", status)
	}

	got := status.Windows[0]
	want := WindowStatus{
		ID: 1, Role: "window", X: 10, Y: 20, Width: 800, Height: 600,
		Phase: "idle", Direction: "none", ResizeEnabled: true, MoveEnabled: true,
	}
	if got != want {
		t.Errorf("window status = %+v, want %+v", got, want)
	}
	if status.Windows[1].Role != "panel" {
		t.Errorf("second window role = %q", status.Windows[1].Role)
	}
}

func TestSetResizeByRole(t *testing.T) {
	h := newHarness(t)

	if err := h.client.SetResize("panel", false); err != nil {
		t.Fatalf("SetResize: %v", err)
	}
	if h.panel.Controller.ResizeEnabled() {
		t.Error("panel resize still enabled")
	}
	if !h.window.Controller.ResizeEnabled() {
		t.Error("window resize changed")
	}

	if err := h.client.SetResize("", true); err != nil {
		t.Fatalf("SetResize all: %v", err)
	}
	if !h.panel.Controller.ResizeEnabled() {
		t.Error("panel resize not re-enabled")
	}
}

func TestSetMove(t *testing.T) {
	h := newHarness(t)

	if err := h.client.SetMove("", false); err != nil {
		t.Fatalf("SetMove: %v", err)
	}
	for _, m := range []*Managed{h.window, h.panel} {
		if m.MoveEnabled() {
			t.Errorf("%s move still enabled", m.Role)
		}
	}

	if err := h.client.SetMove("window", true); err != nil {
		t.Fatalf("SetMove: %v", err)
	}
	if !h.window.MoveEnabled() || h.panel.MoveEnabled() {
		t.Errorf("move = window %v, panel %v", h.window.MoveEnabled(), h.panel.MoveEnabled())
	}
}

func TestUnknownRole(t *testing.T) {
	h := newHarness(t)

	err := h.client.SetResize("sidebar", false)
	if err == nil || !strings.Contains(err.Error(), "Unknown window role") {
		t.Fatalf("SetResize(unknown) error = %v", err)
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	if err := h.client.Quit(); err != nil {
		t.Fatalf("Quit: %v", err)
	}
	if h.quits.Load() != 1 {
		t.Fatalf("quit called %d times", h.quits.Load())
	}
}

func TestSecondServerRefused(t *testing.T) {
	h := newHarness(t)

	other := NewServer(ServerConfig{SocketPath: h.server.socketPath, Logger: testLogger()})
	if err := other.Start(); err == nil {
		other.Stop()
		t.Fatal("second server started on a live socket")
	}
	if err := h.client.Ping(); err != nil {
		t.Fatalf("first server unreachable: %v", err)
	}
}

func TestClientWithoutServer(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if err := c.Ping(); err == nil {
		t.Fatal("Ping succeeded without a server")
	}
}
