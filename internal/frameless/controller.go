// Package frameless implements move and resize behaviour for windows that
// have no native decorations.
//
// A Controller is attached to one host window. The host forwards pointer and
// focus events to it on the UI thread; the controller stamps them with its
// current capability flags and enqueues them on a Dispatcher. The dispatcher
// goroutine owns all interaction state and emits window and cursor mutations
// as Commands, which the host executes on the UI thread via a Mailbox.
package frameless

import (
	"sync"
	"sync/atomic"

	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

// Options configures a Controller.
type Options struct {
	// BorderThickness is the hit-test margin in pixels. Zero selects
	// geometry.DefaultBorderThickness.
	BorderThickness int
	// DisableResize starts the controller with edge resizing turned off.
	DisableResize bool
	// Policy decides where a press may start a move. Nil means MoveAnywhere.
	Policy MovePolicy
	// NativeDrag hands gestures to the platform window manager when the
	// window supports it.
	NativeDrag bool
}

// Controller is the per-window engine facade.
type Controller struct {
	win        platform.Window
	native     platform.NativeDragger
	dispatcher *Dispatcher

	resizeEnabled atomic.Bool
	detached      atomic.Bool

	policyMu sync.RWMutex
	policy   MovePolicy

	stateMu sync.Mutex
	state   State
}

var _ platform.InputHandler = (*Controller)(nil)

// Attach creates a controller for win whose events are handled by d.
func Attach(d *Dispatcher, win platform.Window, opts Options) *Controller {
	policy := opts.Policy
	if policy == nil {
		policy = MoveAnywhere
	}

	c := &Controller{
		win:        win,
		dispatcher: d,
		policy:     policy,
		state:      NewState(opts.BorderThickness),
	}
	c.resizeEnabled.Store(!opts.DisableResize)
	if opts.NativeDrag {
		if nd, ok := win.(platform.NativeDragger); ok {
			c.native = nd
		}
	}
	return c
}

// Window returns the managed host window.
func (c *Controller) Window() platform.Window {
	return c.win
}

// OnFocusIn reports that the window gained focus.
func (c *Controller) OnFocusIn() {
	c.post(Event{Kind: EventFocusIn, ResizeEnabled: c.ResizeEnabled()})
}

// OnHoverMove reports pointer motion with no button held.
func (c *Controller) OnHoverMove(global geometry.Point) bool {
	c.post(Event{Kind: EventHover, Point: global, ResizeEnabled: c.ResizeEnabled()})
	return true
}

// OnPress reports a primary button press.
func (c *Controller) OnPress(global geometry.Point) bool {
	c.post(Event{Kind: EventPress, Point: global, MoveEnabled: c.canMove(global)})
	return true
}

// OnMove reports pointer motion while the button is held.
func (c *Controller) OnMove(global geometry.Point) {
	c.post(Event{
		Kind:          EventMove,
		Point:         global,
		ResizeEnabled: c.ResizeEnabled(),
		MoveEnabled:   c.canMove(global),
	})
}

// OnRelease reports that the primary button was released.
func (c *Controller) OnRelease() {
	c.post(Event{Kind: EventRelease})
}

// OnLeave reports that the pointer left the window.
func (c *Controller) OnLeave() {
	c.post(Event{Kind: EventLeave})
}

// SetResizeEnabled toggles edge resizing. Events already queued keep the
// value they were stamped with.
func (c *Controller) SetResizeEnabled(enabled bool) {
	c.resizeEnabled.Store(enabled)
}

// ResizeEnabled reports whether edge resizing is on.
func (c *Controller) ResizeEnabled() bool {
	return c.resizeEnabled.Load()
}

// SetMovePolicy replaces the move policy. Nil restores MoveAnywhere.
func (c *Controller) SetMovePolicy(p MovePolicy) {
	if p == nil {
		p = MoveAnywhere
	}
	c.policyMu.Lock()
	c.policy = p
	c.policyMu.Unlock()
}

// State returns a snapshot of the interaction state.
func (c *Controller) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// Detach stops the controller from posting events and makes the dispatcher
// and mailbox skip anything already queued for it.
func (c *Controller) Detach() {
	c.detached.Store(true)
}

// Detached reports whether Detach has been called.
func (c *Controller) Detached() bool {
	return c.detached.Load()
}

func (c *Controller) canMove(global geometry.Point) bool {
	c.policyMu.RLock()
	p := c.policy
	c.policyMu.RUnlock()
	return p.CanMove(global)
}

func (c *Controller) storeState(st State) {
	c.stateMu.Lock()
	c.state = st
	c.stateMu.Unlock()
}

func (c *Controller) post(ev Event) {
	if c.Detached() {
		return
	}
	ev.target = c
	c.dispatcher.Post(ev)
}
