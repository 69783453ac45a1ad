package frameless

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/frameless/internal/geometry"
)

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	// Sink receives the UI-thread commands produced by event handling.
	Sink   CommandSink
	Logger *slog.Logger
}

// Dispatcher owns the event queue and the single goroutine that consumes it.
// One dispatcher may serve any number of controllers; events are handled in
// global FIFO order.
type Dispatcher struct {
	queue  *Queue
	sink   CommandSink
	logger *slog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
	done      chan struct{}
}

// NewDispatcher creates a dispatcher. Call Start or Run to begin consuming.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		queue:  NewQueue(),
		sink:   cfg.Sink,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Post enqueues ev. It never blocks and returns false after Stop.
func (d *Dispatcher) Post(ev Event) bool {
	return d.queue.Push(ev)
}

// Start launches the consumer goroutine. Subsequent calls are no-ops.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.started.Store(true)
		go d.loop()
	})
}

// Run starts the dispatcher and blocks until ctx is cancelled, then stops it.
func (d *Dispatcher) Run(ctx context.Context) {
	d.Start()
	d.logger.Info("dispatcher started")

	select {
	case <-ctx.Done():
		d.Stop()
	case <-d.done:
	}
	d.logger.Info("dispatcher stopped")
}

// Stop shuts the queue down, discards pending events and waits for the
// consumer to exit. The event being handled, if any, finishes first.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.queue.Shutdown()
	})
	if d.started.Load() {
		<-d.done
	}
}

// Done is closed once the consumer goroutine has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)

	for {
		ev, ok := d.queue.Pop()
		if !ok {
			if n := d.queue.Drain(); n > 0 {
				d.logger.Debug("discarded pending events", "count", n)
			}
			return
		}
		d.dispatch(ev)
	}
}

// dispatch handles a single event, keeping the consumer alive across panics.
func (d *Dispatcher) dispatch(ev Event) {
	defer func() {
		if err := recover(); err != nil {
			d.logger.Error("dispatcher panic recovered", "error", err, "event", ev.Kind)
		}
	}()

	c := ev.target
	if c == nil || c.Detached() {
		return
	}

	st := c.State()
	d.logger.Debug("event", "window", c.win.ID(), "kind", ev.Kind, "point", ev.Point, "phase", st.Phase())

	switch ev.Kind {
	case EventFocusIn:
		d.handleFocusIn(c, &st, ev)
	case EventHover:
		d.handleHover(c, &st, ev)
	case EventPress:
		d.handlePress(c, &st, ev)
	case EventMove:
		d.handleMove(c, &st, ev)
	case EventRelease:
		d.handleRelease(c, &st)
	case EventLeave:
		d.handleLeave(c, &st)
	case EventNativeDeclined:
		st.NativeGesture = false
	default:
		d.logger.Warn("unknown event", "kind", ev.Kind)
		return
	}

	c.storeState(st)
}

func (d *Dispatcher) handleFocusIn(c *Controller, st *State, ev Event) {
	if st.ButtonPressed {
		return
	}
	st.ResizeEnabled = ev.ResizeEnabled
	d.classify(c, st, c.win.PointerPosition())
}

func (d *Dispatcher) handleHover(c *Controller, st *State, ev Event) {
	if st.ButtonPressed {
		return
	}
	st.ResizeEnabled = ev.ResizeEnabled
	d.classify(c, st, ev.Point)
}

// classify updates the hovered direction and the cursor override for a
// display-global pointer position.
func (d *Dispatcher) classify(c *Controller, st *State, global geometry.Point) {
	if !st.ResizeEnabled {
		st.Direction = geometry.None
		d.clearCursor(c, st)
		return
	}

	frame := geometry.MapFrameToContainerSpace(c.win)
	p := geometry.MapPointToContainerSpace(c.win, global)
	dir, shape := geometry.ClassifyPoint(frame, p, st.BorderThickness)

	st.Direction = dir
	if dir == geometry.None {
		d.clearCursor(c, st)
		return
	}
	d.setCursor(c, st, shape)
}

func (d *Dispatcher) handlePress(c *Controller, st *State, ev Event) {
	st.ButtonPressed = true
	st.MoveEnabled = ev.MoveEnabled

	if st.Direction != geometry.None {
		d.post(c, Command{Kind: CommandReleaseGrab})
		if c.native != nil {
			st.NativeGesture = true
			d.post(c, Command{Kind: CommandNativeResize, Direction: st.Direction, Point: ev.Point})
		}
		return
	}

	if !ev.MoveEnabled {
		return
	}

	frame := geometry.MapFrameToContainerSpace(c.win)
	st.Dragging = true
	st.DragOffset = ev.Point.Sub(frame.TopLeft())
	d.setCursor(c, st, geometry.CursorSizeAll)

	if c.native != nil {
		st.NativeGesture = true
		d.post(c, Command{Kind: CommandNativeMove, Point: ev.Point})
	}
}

func (d *Dispatcher) handleMove(c *Controller, st *State, ev Event) {
	if !st.ButtonPressed || st.NativeGesture {
		return
	}

	if st.Direction == geometry.None {
		// The move was committed at press time; the per-event move flag
		// only matters for starting a drag.
		if !st.Dragging || c.win.IsMaximizedOrFullscreen() {
			return
		}
		d.post(c, Command{Kind: CommandMove, Point: ev.Point.Sub(st.DragOffset)})
		return
	}

	st.ResizeEnabled = ev.ResizeEnabled
	if !ev.ResizeEnabled {
		return
	}

	frame := geometry.MapFrameToContainerSpace(c.win)
	p := geometry.MapPointToContainerSpace(c.win, ev.Point)
	minW, minH := c.win.MinimumSize()
	rect := geometry.ComputeResizeRect(st.Direction, frame, p, minW, minH)
	if rect == frame {
		return
	}
	d.post(c, Command{Kind: CommandGeometry, Rect: rect})
}

func (d *Dispatcher) handleRelease(c *Controller, st *State) {
	st.resetGesture()
	d.clearCursor(c, st)
}

func (d *Dispatcher) handleLeave(c *Controller, st *State) {
	if st.ButtonPressed {
		return
	}
	st.Direction = geometry.None
	d.clearCursor(c, st)
}

func (d *Dispatcher) setCursor(c *Controller, st *State, shape geometry.CursorShape) {
	if st.CursorOverrideActive && st.OverrideShape == shape {
		return
	}
	d.post(c, Command{Kind: CommandSetCursor, Shape: shape})
	st.CursorOverrideActive = true
	st.OverrideShape = shape
}

func (d *Dispatcher) clearCursor(c *Controller, st *State) {
	if !st.CursorOverrideActive {
		return
	}
	d.post(c, Command{Kind: CommandClearCursor})
	st.CursorOverrideActive = false
	st.OverrideShape = geometry.CursorArrow
}

func (d *Dispatcher) post(c *Controller, cmd Command) {
	if d.sink == nil {
		return
	}
	cmd.target = c
	d.logger.Debug("command", "window", c.win.ID(), "kind", cmd.Kind)
	d.sink.Post(cmd)
}
